package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ojt/internal/dtr"
)

// ComputeDTR totals a day's times without submitting them.
func (h *Handler) ComputeDTR(c *gin.Context) {
	var r dtr.Record
	if err := c.ShouldBindJSON(&r); err != nil {
		badRequest(c, err)
		return
	}
	if err := r.Compute(); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_minutes": r.TotalMinutes, "total_hours": r.TotalHours})
}

// SubmitDTR submits a day's record for crediting.
func (h *Handler) SubmitDTR(c *gin.Context) {
	var r dtr.Record
	if err := c.ShouldBindJSON(&r); err != nil {
		badRequest(c, err)
		return
	}
	rec, err := h.Submitter.Submit(c.Request.Context(), r)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"record": rec})
}
