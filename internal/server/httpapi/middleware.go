package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mkraev/lockbox/internal/common"
)

const userIDKey = "userID"

// requireAuth guards data routes: a missing or failed session check is a
// 401 with no detail about which part of the check failed.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := h.sessionFromRequest(c)
		if err != nil {
			if !errors.Is(err, common.ErrorUnauthorized) {
				h.logger.Error(c.Request.Context(), "session check failed", "error", err.Error())
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// pageGuard guards page routes. Unauthenticated traffic is redirected to the
// sign-in page; an invalid token is additionally cleared from the client. An
// authenticated request for the sign-in page is bounced to the home route.
func (h *Handler) pageGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		isSignInPage := c.FullPath() == "/signin"

		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			if !isSignInPage {
				c.Redirect(http.StatusFound, "/signin")
				c.Abort()
				return
			}
			c.Next()
			return
		}

		if _, err := h.users.VerifyToken(token); err != nil {
			h.clearSessionCookie(c)
			if !isSignInPage {
				c.Redirect(http.StatusFound, "/signin")
				c.Abort()
				return
			}
			c.Next()
			return
		}

		if isSignInPage {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// currentUserID returns the user ID stored by requireAuth.
func currentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
