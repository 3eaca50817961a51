package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/repositories"
	"alfredoptarigan/resume-matcher/internal/services"
)

type fakeMatcher struct {
	result  *services.MatchResult
	err     error
	jobCode string
	opts    services.MatchOptions
}

func (f *fakeMatcher) RunMatch(_ context.Context, jobCode string, opts services.MatchOptions) (*services.MatchResult, error) {
	f.jobCode = jobCode
	f.opts = opts
	return f.result, f.err
}

type fakeJobRepo struct {
	jobs []models.Job
	err  error
}

func (f *fakeJobRepo) Create(_ context.Context, job *models.Job) error {
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.jobs {
		if existing.JobCode == job.JobCode {
			return fmt.Errorf("job %q: %w", job.JobCode, repositories.ErrDuplicate)
		}
	}
	f.jobs = append(f.jobs, *job)
	return nil
}

func (f *fakeJobRepo) FindByCode(_ context.Context, jobCode string) (*models.Job, error) {
	for i := range f.jobs {
		if f.jobs[i].JobCode == jobCode {
			return &f.jobs[i], nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeJobRepo) FindAll(context.Context) ([]models.Job, error) {
	return f.jobs, f.err
}

func (f *fakeJobRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range f.jobs {
		if f.jobs[i].ID == id {
			f.jobs = append(f.jobs[:i], f.jobs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("job %s: %w", id, repositories.ErrNotFound)
}

type fakeResumeRepo struct {
	resumes []models.Resume
}

func (f *fakeResumeRepo) Create(_ context.Context, resume *models.Resume) error {
	f.resumes = append(f.resumes, *resume)
	return nil
}

func (f *fakeResumeRepo) FindByJobCode(_ context.Context, jobCode string) ([]models.Resume, error) {
	var out []models.Resume
	for _, r := range f.resumes {
		if r.JobCode == jobCode {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeResumeRepo) ListByJobCode(ctx context.Context, jobCode string) ([]models.Resume, error) {
	out, _ := f.FindByJobCode(ctx, jobCode)
	for i := range out {
		out[i].FileData = nil
	}
	return out, nil
}

type fakeShortlistRepo struct {
	entries []models.Shortlist
	err     error
}

func (f *fakeShortlistRepo) Create(_ context.Context, entry *models.Shortlist) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeShortlistRepo) FindByJobCode(_ context.Context, jobCode string) ([]models.Shortlist, error) {
	var out []models.Shortlist
	for _, e := range f.entries {
		if e.JobCode == jobCode {
			out = append(out, e)
		}
	}
	return out, nil
}

type testDeps struct {
	matcher    *fakeMatcher
	jobs       *fakeJobRepo
	resumes    *fakeResumeRepo
	shortlists *fakeShortlistRepo
}

func newTestApp(t *testing.T) (*fiber.App, *testDeps) {
	t.Helper()

	deps := &testDeps{
		matcher:    &fakeMatcher{},
		jobs:       &fakeJobRepo{},
		resumes:    &fakeResumeRepo{},
		shortlists: &fakeShortlistRepo{},
	}
	log := zap.NewNop()

	app := fiber.New()
	Register(app, Handlers{
		Match:  NewMatchHandler(deps.matcher, deps.shortlists, log),
		Job:    NewJobHandler(deps.jobs, log),
		Resume: NewResumeHandler(deps.resumes, services.NewStorageService(1<<20), log),
	})

	return app, deps
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (int, []byte) {
	t.Helper()

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "healthy")
}

func TestHandleMatch(t *testing.T) {
	app, deps := newTestApp(t)
	deps.matcher.result = &services.MatchResult{
		JobCode: "ENG-001",
		Count:   1,
		Entries: []models.Shortlist{{CandidateName: "Ada", JobCode: "ENG-001", Score: 75, Shortlist: true}},
	}

	status, body := doRequest(t, app, httptest.NewRequest(http.MethodPost, "/api/v1/match/ENG-001?threshold=70", nil))

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ENG-001", deps.matcher.jobCode)
	assert.Equal(t, 70, deps.matcher.opts.Threshold)

	var resp models.MatchResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Ada", resp.Results[0].CandidateName)
	assert.True(t, resp.Results[0].Shortlist)
}

func TestHandleMatchErrors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		err        error
		wantStatus int
	}{
		{name: "job not found", target: "/api/v1/match/NOPE", err: fmt.Errorf("%w: NOPE", services.ErrJobNotFound), wantStatus: http.StatusNotFound},
		{name: "store failure", target: "/api/v1/match/ENG-001", err: errors.New("connection refused"), wantStatus: http.StatusInternalServerError},
		{name: "threshold not a number", target: "/api/v1/match/ENG-001?threshold=high", wantStatus: http.StatusBadRequest},
		{name: "threshold out of range", target: "/api/v1/match/ENG-001?threshold=0", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, deps := newTestApp(t)
			deps.matcher.err = tt.err

			status, body := doRequest(t, app, httptest.NewRequest(http.MethodPost, tt.target, nil))

			assert.Equal(t, tt.wantStatus, status)
			assert.Contains(t, string(body), `"error"`)
		})
	}
}

func TestHandleGetShortlist(t *testing.T) {
	app, deps := newTestApp(t)
	deps.shortlists.entries = []models.Shortlist{
		{CandidateName: "Ada", JobCode: "ENG-001"},
		{CandidateName: "Bob", JobCode: "OPS-002"},
	}

	status, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/shortlists/ENG-001", nil))

	require.Equal(t, http.StatusOK, status)
	var entries []models.Shortlist
	require.NoError(t, json.Unmarshal(body, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "Ada", entries[0].CandidateName)
}

func TestJobLifecycle(t *testing.T) {
	app, deps := newTestApp(t)

	payload := `{"job_code": " ENG-001 ", "title": "Backend Engineer", "required_skills": ["Go", "SQL"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	status, _ := doRequest(t, app, req)
	require.Equal(t, http.StatusCreated, status)
	require.Len(t, deps.jobs.jobs, 1)

	job := deps.jobs.jobs[0]
	assert.Equal(t, "ENG-001", job.JobCode)
	assert.Equal(t, []string{"Go", "SQL"}, []string(job.RequiredSkills))

	status, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil))
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "Backend Engineer")

	status, _ = doRequest(t, app, httptest.NewRequest(http.MethodDelete, "/api/v1/jobs/"+job.ID.String(), nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, deps.jobs.jobs)

	status, _ = doRequest(t, app, httptest.NewRequest(http.MethodDelete, "/api/v1/jobs/"+job.ID.String(), nil))
	assert.Equal(t, http.StatusNotFound, status)
}

func TestJobHandlerValidation(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", strings.NewReader(`{"title": "No code"}`))
	req.Header.Set("Content-Type", "application/json")
	status, _ := doRequest(t, app, req)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doRequest(t, app, httptest.NewRequest(http.MethodDelete, "/api/v1/jobs/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, status)
}

func uploadRequest(t *testing.T, jobCode, filename string, content []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if jobCode != "" {
		require.NoError(t, writer.WriteField("job_code", jobCode))
	}
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestResumeUploadAndList(t *testing.T) {
	app, deps := newTestApp(t)
	content := []byte("%PDF-1.4\nfake resume body")

	status, body := doRequest(t, app, uploadRequest(t, "ENG-001", "ada.pdf", content))
	require.Equal(t, http.StatusCreated, status, string(body))

	var upload models.UploadResponse
	require.NoError(t, json.Unmarshal(body, &upload))
	assert.Equal(t, "ENG-001", upload.JobCode)
	assert.Equal(t, "ada.pdf", upload.Filename)
	assert.Equal(t, len(content), upload.Size)

	require.Len(t, deps.resumes.resumes, 1)
	assert.Equal(t, content, deps.resumes.resumes[0].FileData)

	status, body = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/resumes?code=ENG-001", nil))
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "ada.pdf")
	assert.NotContains(t, string(body), "fake resume body")
}

func TestResumeUploadValidation(t *testing.T) {
	tests := []struct {
		name     string
		jobCode  string
		filename string
		content  []byte
	}{
		{name: "missing job code", filename: "ada.pdf", content: []byte("%PDF-1.4")},
		{name: "missing file", jobCode: "ENG-001"},
		{name: "not a pdf", jobCode: "ENG-001", filename: "ada.pdf", content: []byte("hello")},
		{name: "wrong extension", jobCode: "ENG-001", filename: "ada.txt", content: []byte("%PDF-1.4")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, deps := newTestApp(t)

			status, _ := doRequest(t, app, uploadRequest(t, tt.jobCode, tt.filename, tt.content))

			assert.Equal(t, http.StatusBadRequest, status)
			assert.Empty(t, deps.resumes.resumes)
		})
	}
}

func TestResumeListRequiresCode(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/resumes", nil))

	assert.Equal(t, http.StatusBadRequest, status)
}

func jsonRequest(method, target, payload string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestJobCreateDuplicateCode(t *testing.T) {
	app, deps := newTestApp(t)
	payload := `{"job_code": "ENG-001", "title": "Backend Engineer"}`

	status, _ := doRequest(t, app, jsonRequest(http.MethodPost, "/api/v1/jobs", payload))
	require.Equal(t, http.StatusCreated, status)

	status, body := doRequest(t, app, jsonRequest(http.MethodPost, "/api/v1/jobs", payload))
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, string(body), "already exists")
	assert.Len(t, deps.jobs.jobs, 1)
}

func TestHandlersWithoutLogger(t *testing.T) {
	jobs := &fakeJobRepo{err: errors.New("connection refused")}
	shortlists := &fakeShortlistRepo{err: errors.New("connection refused")}
	matcher := &fakeMatcher{err: errors.New("connection refused")}

	app := fiber.New()
	Register(app, Handlers{
		Match:  NewMatchHandler(matcher, shortlists, nil),
		Job:    NewJobHandler(jobs, nil),
		Resume: NewResumeHandler(&fakeResumeRepo{}, services.NewStorageService(1<<20), nil),
	})

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil),
		httptest.NewRequest(http.MethodPost, "/api/v1/match/ENG-001", nil),
		jsonRequest(http.MethodPost, "/api/v1/shortlists", `{"job_code": "ENG-001"}`),
	} {
		status, _ := doRequest(t, app, req)
		assert.Equal(t, http.StatusInternalServerError, status, req.URL.Path)
	}
}

func TestCreateShortlist(t *testing.T) {
	app, deps := newTestApp(t)
	resumeID := uuid.New()
	payload := fmt.Sprintf(`{
		"candidate_name": "Ada Lovelace",
		"resume_id": %q,
		"job_code": "ENG-001",
		"score": 82,
		"matched_skills": ["Go"],
		"summary": "Picked by the hiring manager.",
		"shortlist": true
	}`, resumeID)

	status, body := doRequest(t, app, jsonRequest(http.MethodPost, "/api/v1/shortlists", payload))

	require.Equal(t, http.StatusCreated, status, string(body))
	assert.Contains(t, string(body), "Shortlist saved")
	require.Len(t, deps.shortlists.entries, 1)

	entry := deps.shortlists.entries[0]
	assert.Equal(t, "Ada Lovelace", entry.CandidateName)
	assert.Equal(t, models.NotAvailable, entry.Email)
	require.NotNil(t, entry.ResumeID)
	assert.Equal(t, resumeID, *entry.ResumeID)
	assert.Equal(t, 82, entry.Score)
	assert.Equal(t, []string{"Go"}, []string(entry.MatchedSkills))
	assert.Equal(t, []string{}, []string(entry.MissingSkills))
	assert.True(t, entry.Shortlist)
	assert.False(t, entry.DateShortlisted.IsZero())

	status, body = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/shortlists/ENG-001", nil))
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "Ada Lovelace")
}

func TestCreateShortlistValidation(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "malformed body", payload: `{"job_code": `},
		{name: "missing job code", payload: `{"candidate_name": "Ada"}`},
		{name: "score out of range", payload: `{"job_code": "ENG-001", "score": 120}`},
		{name: "bad resume id", payload: `{"job_code": "ENG-001", "resume_id": "nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, deps := newTestApp(t)

			status, _ := doRequest(t, app, jsonRequest(http.MethodPost, "/api/v1/shortlists", tt.payload))

			assert.Equal(t, http.StatusBadRequest, status)
			assert.Empty(t, deps.shortlists.entries)
		})
	}
}
