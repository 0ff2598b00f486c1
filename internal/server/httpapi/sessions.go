// Package httpapi exposes the vault over HTTP: JSON data routes, the page
// route guard, and the cookie-based session transport.
package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mkraev/lockbox/internal/common"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "auth_token"

// sessionFromRequest is the single capability check behind both the page
// guard and the API middleware: it reads the session cookie and verifies the
// token, returning the authenticated user ID. Every failure wraps
// common.ErrorUnauthorized; the cause stays available for diagnostics.
func (h *Handler) sessionFromRequest(c *gin.Context) (string, error) {
	token, err := c.Cookie(SessionCookieName)
	if err != nil {
		return "", fmt.Errorf("%w: no session cookie", common.ErrorUnauthorized)
	}
	userID, err := h.users.VerifyToken(token)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}
	return userID, nil
}

// setSessionCookie installs the session cookie: httpOnly, SameSite=Lax,
// path=/, Secure in production.
func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, h.cookieMaxAge, "/", "", h.secureCookies, true)
}

// clearSessionCookie expires the session cookie immediately.
func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", h.secureCookies, true)
}
