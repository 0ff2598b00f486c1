package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mkraev/lockbox/internal/common"
)

// AuthRequest is the body of POST /auth; isLogin selects login vs registration.
type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	IsLogin  bool   `json:"isLogin"`
}

// Authenticate handles POST /auth. On success a session cookie is installed;
// registration doubles as login.
func (h *Handler) Authenticate(c *gin.Context) {
	var req AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var token string
	var err error
	if req.IsLogin {
		token, err = h.users.Login(c.Request.Context(), req.Email, req.Password)
	} else {
		token, err = h.users.Register(c.Request.Context(), req.Email, req.Password)
	}

	if err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		case errors.Is(err, common.ErrorAlreadyExists):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
		case errors.Is(err, common.ErrorValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing email or password"})
		default:
			h.logger.Error(c.Request.Context(), "authentication failed", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
		}
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Logout handles POST /auth/logout: the client discards its bearer token.
// The token itself stays cryptographically valid until expiry; there is no
// server-side revocation list.
func (h *Handler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
