package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/schema"
	"github.com/justsurfingit/job-board/internal/services"
	"github.com/justsurfingit/job-board/internal/upload"
)

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, dtos.ErrorResponse{Message: message})
}

// respondServiceError maps domain errors to 400/404 and everything else
// to a 500 carrying only the generic fallback message.
func respondServiceError(c *gin.Context, err error, fallback string) {
	var verr *schema.ValidationError
	var rej *upload.RejectedError
	switch {
	case errors.As(err, &verr):
		respondError(c, http.StatusBadRequest, verr.Error())
	case errors.As(err, &rej):
		respondError(c, http.StatusBadRequest, rej.Reason)
	case errors.Is(err, services.ErrJobNotFound):
		respondError(c, http.StatusNotFound, "Job not found")
	default:
		log.Printf("❌ %s %s: %v", c.Request.Method, c.FullPath(), err)
		respondError(c, http.StatusInternalServerError, fallback)
	}
}
