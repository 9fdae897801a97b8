package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/schema"
	"github.com/justsurfingit/job-board/internal/services"
)

type JobHandler struct {
	JobService *services.JobService
	LLMService *services.LLMService
}

// NewJobHandler creates the handler with dependencies. llm may be nil.
func NewJobHandler(j *services.JobService, llm *services.LLMService) *JobHandler {
	return &JobHandler{
		JobService: j,
		LLMService: llm,
	}
}

// ListJobs is GET /jobs. Inactive jobs are left out.
func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.JobService.ListJobs(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to fetch jobs")
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// GetJob is GET /jobs/:id.
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.JobService.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch job")
		return
	}
	c.JSON(http.StatusOK, job)
}

// CreateJob is POST /jobs with a JSON job candidate.
func (h *JobHandler) CreateJob(c *gin.Context) {
	var candidate map[string]any
	if err := c.ShouldBindJSON(&candidate); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON format: "+err.Error())
		return
	}
	job, err := h.JobService.CreateJob(c.Request.Context(), candidate)
	if err != nil {
		respondServiceError(c, err, "Failed to create job")
		return
	}
	c.JSON(http.StatusCreated, job)
}

// ListApplications is GET /jobs/:id/applications. An unknown id gives an
// empty list.
func (h *JobHandler) ListApplications(c *gin.Context) {
	apps, err := h.JobService.ApplicationsForJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch applications")
		return
	}
	c.JSON(http.StatusOK, apps)
}

// ParseJob is POST /jobs/extract. It returns the candidate the model
// extracted without storing it.
func (h *JobHandler) ParseJob(c *gin.Context) {
	var req dtos.JobExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON format: "+err.Error())
		return
	}

	candidate, err := h.LLMService.ExtractJob(c.Request.Context(), req.RawHTML)
	if errors.Is(err, services.ErrExtractionDisabled) {
		respondError(c, http.StatusServiceUnavailable, "Job extraction is not configured")
		return
	}
	if err != nil {
		respondServiceError(c, err, "AI extraction failed")
		return
	}

	resp := dtos.JobExtractionResponse{Data: candidate, Valid: true}
	if _, err := schema.ValidateInsertJob(candidate); err != nil {
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			resp.Valid = false
			resp.Issues = verr.Fields
		}
	}
	c.JSON(http.StatusOK, resp)
}

// HealthCheck is GET /health. It fails when the store is unreachable.
func (h *JobHandler) HealthCheck(c *gin.Context) {
	if err := h.JobService.Ping(c.Request.Context()); err != nil {
		log.Printf("❌ Health check: %v", err)
		respondError(c, http.StatusServiceUnavailable, "Storage unavailable")
		return
	}
	c.JSON(http.StatusOK, dtos.HealthResponse{Status: "ok"})
}
