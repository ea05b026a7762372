package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"ojt/internal/accounts"
	"ojt/internal/trainee"
	"ojt/internal/validate"
	"ojt/internal/workflow"
)

// writeError maps err onto a status code and JSON body.
func writeError(c *gin.Context, err error) {
	var errs validate.Errors
	var fe validate.ValidationError
	switch {
	case errors.As(err, &errs):
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
	case errors.As(err, &fe):
		c.JSON(http.StatusBadRequest, gin.H{"errors": validate.Errors{fe}})
	case errors.Is(err, accounts.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"errors": validate.Errors{
			{Field: "password", Message: "Invalid username or password"},
		}})
	case errors.Is(err, trainee.ErrNotFound), errors.Is(err, workflow.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, trainee.ErrNotEditing):
		c.JSON(http.StatusConflict, gin.H{"error": "not editing"})
	case errors.Is(err, workflow.ErrUnknownAction), errors.Is(err, workflow.ErrTransitionNotAllowed):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusRequestTimeout, gin.H{"error": "request cancelled"})
	default:
		log.Printf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// badRequest reports an undecodable body.
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
