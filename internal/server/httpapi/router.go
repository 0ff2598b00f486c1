package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with the page guard on page routes and
// inline session checks on data routes; both go through the same
// sessionFromRequest capability check.
func NewRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	// Pages. Rendering is a stub; the guard semantics are the point.
	r.GET("/", h.pageGuard(), h.homePage)
	r.GET("/signin", h.pageGuard(), h.signInPage)

	r.POST("/auth", h.Authenticate)
	r.POST("/auth/logout", h.requireAuth(), h.Logout)

	vault := r.Group("/vault", h.requireAuth())
	{
		vault.GET("", h.ListItems)
		vault.POST("", h.CreateItem)
		vault.GET("/:id", h.FetchItem)
		vault.DELETE("/:id", h.DeleteItem)
	}

	return r
}

func (h *Handler) homePage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte("<!doctype html><title>Lockbox</title><h1>Lockbox</h1>"))
}

func (h *Handler) signInPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte("<!doctype html><title>Sign in</title><h1>Sign in</h1>"))
}
