package httpapi

import (
	"github.com/mkraev/lockbox/internal/logging"
	"github.com/mkraev/lockbox/internal/server/config"
	"github.com/mkraev/lockbox/internal/server/services"
)

// Handler bundles the services and settings the HTTP routes need.
type Handler struct {
	users         *services.UserService
	vault         *services.VaultService
	logger        logging.Logger
	cookieMaxAge  int
	secureCookies bool
}

// NewHandler constructs the route handler set.
func NewHandler(us *services.UserService, vs *services.VaultService, l logging.Logger, cfg *config.Config) *Handler {
	return &Handler{
		users:         us,
		vault:         vs,
		logger:        l.With("module", "httpapi"),
		cookieMaxAge:  int(cfg.TokenValidityDuration.Seconds()),
		secureCookies: cfg.IsProduction(),
	}
}
