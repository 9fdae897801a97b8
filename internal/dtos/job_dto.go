package dtos

import "github.com/justsurfingit/job-board/internal/schema"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Message string `json:"message"`
}

type JobExtractionRequest struct {
	RawHTML string `json:"raw_html" binding:"required"`
	URL     string `json:"url"`
}

// JobExtractionResponse carries the extracted candidate and whatever
// keeps it from passing validation as is.
type JobExtractionResponse struct {
	Data   map[string]any      `json:"data"`
	Valid  bool                `json:"valid"`
	Issues []schema.FieldError `json:"issues,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
