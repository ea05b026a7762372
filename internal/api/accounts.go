package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ojt/internal/accounts"
	"ojt/internal/auth"
)

// Register creates an account.
func (h *Handler) Register(c *gin.Context) {
	var in accounts.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	acct, err := h.Accounts.Register(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": acct.Profile()})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login checks credentials and issues a session token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	acct, err := h.Accounts.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.Metrics.Logins.WithLabelValues("failure").Inc()
		writeError(c, err)
		return
	}
	tok, err := h.Issuer.Issue(acct.Username, acct.Role)
	if err != nil {
		writeError(c, err)
		return
	}
	h.Metrics.Logins.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, gin.H{
		"token":      tok.AccessToken,
		"expires_at": tok.ExpiresAt.Unix(),
		"user":       acct.Profile(),
	})
}

// ForgotPassword resets the password of an existing username.
func (h *Handler) ForgotPassword(c *gin.Context) {
	var in accounts.ResetInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.Accounts.ResetPassword(c.Request.Context(), in); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "password updated"})
}

// Logout clears the signed-in marker.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.Accounts.Logout(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Me returns the caller's profile.
func (h *Handler) Me(c *gin.Context) {
	claims, _ := auth.FromContext(c)
	acct, ok, err := h.Accounts.Lookup(c.Request.Context(), claims.Username)
	if err != nil {
		writeError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": acct.Profile()})
}
