package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// ErrExtractionDisabled is returned when no model is configured.
var ErrExtractionDisabled = errors.New("job extraction is not configured")

const maxRawHTML = 20000

type LLMService struct {
	Client llms.Model
}

// NewLLMService initializes the Gemini client. An empty apiKey yields a
// service whose calls return ErrExtractionDisabled.
func NewLLMService(ctx context.Context, apiKey, model string) (*LLMService, error) {
	if apiKey == "" {
		return &LLMService{}, nil
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &LLMService{
		Client: llm,
	}, nil
}

// Enabled reports whether a model is configured.
func (s *LLMService) Enabled() bool {
	return s != nil && s.Client != nil
}

const jobExtractionPrompt = `
You are an expert Job Data Extraction Agent. Your task is to analyze the provided raw HTML/Text from a job posting and extract structured data.

### INSTRUCTIONS:
1. **Analyze** the text to identify the core job details.
2. **Ignore** navigation menus, footers, "similar jobs" lists, and site advertisements.
3. **Extract** the following fields strictly.
4. **Format** the output as valid JSON only. Do not wrap the output in markdown code blocks.

### OUTPUT SCHEMA:
{
    "title": "Job title (e.g., Senior Backend Engineer)",
    "company": "Name of the company (e.g., Google, StartupInc)",
    "location": "Job location or 'Remote'",
    "type": "One of: Full-time, Part-time, Contract, Internship",
    "description": "A clean summary of the job. Remove HTML tags.",
    "requirements": ["Each requirement as one string"],
    "deliverables": ["Each responsibility as one string"],
    "technologies": ["Go", "React", "AWS"],
    "salaryMin": 100000,
    "salaryMax": 150000,
    "experienceLevel": "One of: Entry Level, Mid Level, Senior Level",
    "companyLogo": "Absolute logo URL if present",
    "interviewQuestions": []
}

### CONSTRAINT:
If a piece of information is missing, set the value to null (use [] for lists). Do not hallucinate or guess.
Salaries are whole yearly amounts without currency symbols.

### RAW CONTENT:
%s
`

// ExtractJob asks the model to turn a raw posting into a job candidate.
// The result is untyped and still has to pass schema validation.
func (s *LLMService) ExtractJob(ctx context.Context, rawHTML string) (map[string]any, error) {
	if !s.Enabled() {
		return nil, ErrExtractionDisabled
	}
	if len(rawHTML) > maxRawHTML {
		rawHTML = rawHTML[:maxRawHTML]
	}

	prompt := fmt.Sprintf(jobExtractionPrompt, rawHTML)
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, prompt,
		llms.WithJSONMode(),
		llms.WithTemperature(0),
	)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	var candidate map[string]any
	dec := json.NewDecoder(strings.NewReader(stripCodeFence(resp)))
	dec.UseNumber()
	if err := dec.Decode(&candidate); err != nil {
		return nil, fmt.Errorf("parse model output: %w", err)
	}
	return candidate, nil
}

// stripCodeFence removes a ```json ... ``` wrapper some models add anyway.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
