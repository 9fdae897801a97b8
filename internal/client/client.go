// Package client talks to the job board REST API.
//
//	c := client.New("http://localhost:8080")
//	jobs, err := c.ListJobs(ctx)
//	app, err := c.SubmitApplication(ctx, form, client.ResumeFile{Name: "cv.pdf", Content: data})
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/schema"
	"github.com/justsurfingit/job-board/internal/upload"
)

// ErrNotFound is wrapped by errors for a 404 response.
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("job board: %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

type Client struct {
	baseURL string
	http    *http.Client
	policy  upload.Policy
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default client, which times out after 30s.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithPolicy sets the resume checks applied before uploading.
func WithPolicy(p upload.Policy) Option {
	return func(c *Client) { c.policy = p }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		policy:  upload.DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ListJobs(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	return jobs, c.getJSON(ctx, "/api/jobs", &jobs)
}

// GetJob returns an error wrapping ErrNotFound for an unknown id.
func (c *Client) GetJob(ctx context.Context, id string) (models.Job, error) {
	var job models.Job
	return job, c.getJSON(ctx, "/api/jobs/"+url.PathEscape(id), &job)
}

func (c *Client) ApplicationsForJob(ctx context.Context, jobID string) ([]models.Application, error) {
	var apps []models.Application
	return apps, c.getJSON(ctx, "/api/jobs/"+url.PathEscape(jobID)+"/applications", &apps)
}

// ResumeFile is a resume to upload. An empty ContentType is inferred from
// the extension.
type ResumeFile struct {
	Name        string
	ContentType string
	Content     []byte
}

// SubmitApplication checks the form and resume locally, then posts them
// as multipart/form-data. The local checks only save a round trip; the
// server decides.
func (c *Client) SubmitApplication(ctx context.Context, form map[string]string, resume ResumeFile) (models.Application, error) {
	candidate := make(map[string]any, len(form))
	for k, v := range form {
		candidate[k] = v
	}
	if _, err := schema.ValidateApplicationForm(candidate); err != nil {
		return models.Application{}, err
	}

	if resume.ContentType == "" {
		resume.ContentType = c.typeFor(resume.Name)
	}
	if err := c.policy.Check(resume.Name, resume.ContentType, int64(len(resume.Content))); err != nil {
		return models.Application{}, err
	}
	if err := c.policy.Sniff(resume.Content, resume.Name); err != nil {
		return models.Application{}, err
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range form {
		if err := mw.WriteField(k, v); err != nil {
			return models.Application{}, err
		}
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="resume"; filename=%q`, filepath.Base(resume.Name)))
	h.Set("Content-Type", resume.ContentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return models.Application{}, err
	}
	if _, err := part.Write(resume.Content); err != nil {
		return models.Application{}, err
	}
	if err := mw.Close(); err != nil {
		return models.Application{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/applications", &body)
	if err != nil {
		return models.Application{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var app models.Application
	return app, c.do(req, &app)
}

func (c *Client) typeFor(name string) string {
	types := c.policy.Allowed[strings.ToLower(filepath.Ext(name))]
	if len(types) == 0 {
		return "application/octet-stream"
	}
	return types[0]
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var body struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body); err == nil && body.Message != "" {
			apiErr.Message = body.Message
		}
		return apiErr
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
	}
	return nil
}
