package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ojt/internal/profile"
)

// GetProfile returns the supervisor profile.
func (h *Handler) GetProfile(c *gin.Context) {
	p, err := h.Profiles.Get(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": p})
}

// SaveProfile replaces the supervisor profile.
func (h *Handler) SaveProfile(c *gin.Context) {
	var p profile.Supervisor
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	saved, err := h.Profiles.Save(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": saved})
}
