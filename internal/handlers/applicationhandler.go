package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/services"
	"github.com/justsurfingit/job-board/internal/upload"
)

// formOverhead is the room left for the text fields and multipart framing
// on top of the resume size limit.
const formOverhead = 1 << 20

type ApplicationHandler struct {
	Service *services.ApplicationService
	// MaxBodyBytes caps the whole request body.
	MaxBodyBytes int64
}

// NewApplicationHandler sizes the body cap from the service's upload policy.
func NewApplicationHandler(svc *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		Service:      svc,
		MaxBodyBytes: svc.Policy.MaxSize + formOverhead,
	}
}

// Submit is POST /applications, a multipart form whose file field is
// "resume".
func (h *ApplicationHandler) Submit(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxBodyBytes)

	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			respondServiceError(c, h.Service.Policy.TooLarge(), "Failed to submit application")
		case errors.Is(err, http.ErrNotMultipart), errors.Is(err, http.ErrMissingBoundary):
			respondError(c, http.StatusBadRequest, upload.ErrMissingFile.Reason)
		default:
			respondError(c, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		}
		return
	}
	defer func() {
		if err := form.RemoveAll(); err != nil {
			log.Printf("⚠️  Multipart temp files not removed: %v", err)
		}
	}()

	fields := make(map[string]any, len(form.Value))
	for key, values := range form.Value {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}

	var resume *services.Resume
	if files := form.File["resume"]; len(files) > 0 {
		fh := files[0]
		f, err := fh.Open()
		if err != nil {
			respondServiceError(c, fmt.Errorf("open resume: %w", err), "Failed to submit application")
			return
		}
		defer f.Close()

		resume = &services.Resume{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Content:     f,
		}
	}

	app, err := h.Service.Submit(c.Request.Context(), fields, resume)
	if err != nil {
		respondServiceError(c, err, "Failed to submit application")
		return
	}
	c.JSON(http.StatusCreated, app)
}

// List is GET /applications.
func (h *ApplicationHandler) List(c *gin.Context) {
	apps, err := h.Service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to fetch applications")
		return
	}
	c.JSON(http.StatusOK, apps)
}
