package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/fixtures"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/services"
	"github.com/justsurfingit/job-board/internal/storage"
	"github.com/justsurfingit/job-board/internal/upload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router *gin.Engine
	store  *storage.MemStorage
	disk   *upload.DiskStore
	jobs   []models.Job
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	store := storage.NewMemStorage()
	seed, err := fixtures.LoadJobs("")
	require.NoError(t, err)
	_, err = storage.Seed(ctx, store, seed)
	require.NoError(t, err)
	jobs, err := store.ListJobs(ctx)
	require.NoError(t, err)

	dir := t.TempDir()
	disk, err := upload.NewDiskStore(dir, "/uploads")
	require.NoError(t, err)

	jobSvc := services.NewJobService(store)
	appSvc := services.NewApplicationService(store, disk, upload.DefaultPolicy(), nil)
	router := NewRouter(RouterConfig{
		UploadDir:       dir,
		UploadURLPrefix: "/uploads",
	}, NewJobHandler(jobSvc, &services.LLMService{}), NewApplicationHandler(appSvc))

	return &testServer{router: router, store: store, disk: disk, jobs: jobs}
}

func (s *testServer) jobID(t *testing.T, title string) string {
	t.Helper()
	for _, j := range s.jobs {
		if j.Title == title {
			return j.ID
		}
	}
	t.Fatalf("no seeded job %q", title)
	return ""
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

type resumePart struct {
	filename    string
	contentType string
	content     []byte
}

func pdfContent(n int) []byte {
	b := bytes.Repeat([]byte("x"), n)
	copy(b, "%PDF-1.7\n")
	return b
}

func multipartRequest(t *testing.T, fields map[string]string, resume *resumePart) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if resume != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="resume"; filename=%q`, resume.filename))
		h.Set("Content-Type", resume.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(resume.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/applications", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func applicantFields(jobID string) map[string]string {
	return map[string]string{
		"jobId":             jobID,
		"firstName":         "Ada",
		"lastName":          "Lovelace",
		"email":             "ada@example.com",
		"phone":             "555-0100",
		"experience":        "5-10",
		"coverLetter":       "I like backends.",
		"workAuthorization": "citizen",
	}
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Message
}

func TestListAndGetJobs(t *testing.T) {
	s := newTestServer(t)

	w := s.do(httptest.NewRequest(http.MethodGet, "/api/jobs", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var jobs []models.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &jobs))
	assert.Len(t, jobs, 3)

	id := s.jobID(t, "Backend Developer")
	w = s.do(httptest.NewRequest(http.MethodGet, "/api/jobs/"+id, nil))
	require.Equal(t, http.StatusOK, w.Code)
	var job map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &job))
	assert.Equal(t, id, job["id"])
	assert.Equal(t, "Backend Developer", job["title"])
	assert.Contains(t, job, "salaryMin")

	w = s.do(httptest.NewRequest(http.MethodGet, "/api/jobs/does-not-exist", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Job not found", decodeMessage(t, w))
}

func TestCreateJob(t *testing.T) {
	s := newTestServer(t)

	body := `{
		"title": "Platform Engineer",
		"company": "Gopher Inc",
		"location": "Remote",
		"type": "Full-time",
		"description": "Keep it running.",
		"requirements": ["Kubernetes"],
		"deliverables": [],
		"technologies": ["Go"],
		"experienceLevel": "Mid Level",
		"interviewQuestions": [],
		"isActive": false
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/jobs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := s.do(req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var job models.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &job))
	assert.NotEmpty(t, job.ID)
	assert.False(t, job.IsActive)

	w = s.do(httptest.NewRequest(http.MethodGet, "/api/jobs", nil))
	var jobs []models.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &jobs))
	assert.Len(t, jobs, 3, "inactive job is not listed")

	req = httptest.NewRequest(http.MethodPost, "/api/jobs", strings.NewReader(`{"title": 7}`))
	req.Header.Set("Content-Type", "application/json")
	w = s.do(req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeMessage(t, w), "title")
}

func TestSubmitApplication(t *testing.T) {
	s := newTestServer(t)
	id := s.jobID(t, "Backend Developer")

	req := multipartRequest(t, applicantFields(id), &resumePart{
		filename:    "ada.pdf",
		contentType: upload.TypePDF,
		content:     pdfContent(10 * 1024),
	})
	w := s.do(req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var app map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &app))
	assert.NotEmpty(t, app["id"])
	assert.Equal(t, id, app["jobId"])
	assert.NotEmpty(t, app["appliedAt"])
	url, _ := app["resumeUrl"].(string)
	assert.True(t, strings.HasPrefix(url, "/uploads/resume-"), url)
	assert.True(t, strings.HasSuffix(url, ".pdf"), url)

	w = s.do(httptest.NewRequest(http.MethodGet, url, nil))
	assert.Equal(t, http.StatusOK, w.Code, "uploaded resume is served")

	w = s.do(httptest.NewRequest(http.MethodGet, "/api/jobs/"+id+"/applications", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var apps []models.Application
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apps))
	require.Len(t, apps, 1)
	assert.Equal(t, app["id"], apps[0].ID)

	w = s.do(httptest.NewRequest(http.MethodGet, "/api/applications", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apps))
	assert.Len(t, apps, 1)
}

func TestSubmitApplicationRejected(t *testing.T) {
	tests := []struct {
		name    string
		fields  func(jobID string) map[string]string
		resume  *resumePart
		message string
	}{
		{
			name:    "missing file",
			fields:  applicantFields,
			resume:  nil,
			message: "Resume file is required",
		},
		{
			name:   "executable",
			fields: applicantFields,
			resume: &resumePart{
				filename:    "setup.exe",
				contentType: "application/octet-stream",
				content:     []byte("MZ"),
			},
			message: "Only PDF, DOC, and DOCX files are allowed",
		},
		{
			name:   "pdf extension with wrong media type",
			fields: applicantFields,
			resume: &resumePart{
				filename:    "cv.pdf",
				contentType: "text/plain",
				content:     pdfContent(64),
			},
			message: "Only PDF, DOC, and DOCX files are allowed",
		},
		{
			name:   "oversized",
			fields: applicantFields,
			resume: &resumePart{
				filename:    "big.pdf",
				contentType: upload.TypePDF,
				content:     pdfContent(int(upload.DefaultMaxSize) + 1),
			},
			message: "File too large",
		},
		{
			name: "missing email",
			fields: func(jobID string) map[string]string {
				f := applicantFields(jobID)
				delete(f, "email")
				return f
			},
			resume: &resumePart{
				filename:    "ada.pdf",
				contentType: upload.TypePDF,
				content:     pdfContent(1024),
			},
			message: "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			id := s.jobID(t, "Backend Developer")

			w := s.do(multipartRequest(t, tt.fields(id), tt.resume))
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, decodeMessage(t, w), tt.message)

			apps, err := s.store.ListApplications(context.Background())
			require.NoError(t, err)
			assert.Empty(t, apps)

			entries, err := os.ReadDir(s.disk.Dir)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestSubmitApplicationNotMultipart(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/applications", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	w := s.do(req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Resume file is required", decodeMessage(t, w))
}

func TestApplicationsForUnknownJob(t *testing.T) {
	s := newTestServer(t)

	w := s.do(httptest.NewRequest(http.MethodGet, "/api/jobs/unknown/applications", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestParseJobDisabled(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/jobs/extract", strings.NewReader(`{"raw_html": "<p>hi</p>"}`))
	req.Header.Set("Content-Type", "application/json")

	w := s.do(req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/jobs/extract", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w = s.do(req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)
	w := s.do(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

// brokenStore fails every call it overrides.
type brokenStore struct {
	storage.Storage
}

var errBroken = errors.New("connection reset by peer")

func (brokenStore) ListJobs(context.Context) ([]models.Job, error) { return nil, errBroken }

func (brokenStore) GetJob(context.Context, string) (models.Job, bool, error) {
	return models.Job{}, false, errBroken
}

func (brokenStore) Ping(context.Context) error { return errBroken }

func TestStorageFailuresAreGeneric(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(RouterConfig{}, NewJobHandler(services.NewJobService(brokenStore{}), nil), NewApplicationHandler(
		services.NewApplicationService(brokenStore{}, nil, upload.DefaultPolicy(), nil)))

	tests := []struct {
		path    string
		code    int
		message string
	}{
		{"/api/jobs", http.StatusInternalServerError, "Failed to fetch jobs"},
		{"/api/jobs/some-id", http.StatusInternalServerError, "Failed to fetch job"},
		{"/api/health", http.StatusServiceUnavailable, "Storage unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, tt.message, decodeMessage(t, w))
			assert.NotContains(t, w.Body.String(), errBroken.Error())
		})
	}
}
