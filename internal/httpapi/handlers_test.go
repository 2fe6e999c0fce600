package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
	"github.com/nguyentantai21042004/lecture-flow/internal/models"
	"github.com/nguyentantai21042004/lecture-flow/internal/processor"
	"github.com/nguyentantai21042004/lecture-flow/internal/store"
)

type fakeRunner struct {
	mu   sync.Mutex
	jobs []processor.Job
}

func (f *fakeRunner) Run(ctx context.Context, job processor.Job) (*models.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = append(f.jobs, job)
	return &models.Report{ID: job.ID}, nil
}

type testAPI struct {
	api    *API
	runner *fakeRunner
	store  store.Store
	srv    *httptest.Server
	dir    string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	runner := &fakeRunner{}
	api := New(context.Background(), runner, st, dir, filepath.Join(dir, "uploads"), logger.Nop())
	srv := httptest.NewServer(api.Router())
	t.Cleanup(srv.Close)
	return &testAPI{api: api, runner: runner, store: st, srv: srv, dir: dir}
}

func (ta *testAPI) writeDeck(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(ta.dir, name)
	require.NoError(t, os.WriteFile(path, []byte("pptx"), 0644))
	return path
}

func TestSubmitRunJSON(t *testing.T) {
	ta := newTestAPI(t)
	deck := ta.writeDeck(t, "week1.pptx")

	body := `{"deck_path": "` + deck + `", "directives": {"tone": "calm", "speed": 1.5}}`
	resp, err := http.Post(ta.srv.URL+"/api/runs", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var got SubmitResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, models.StatusRunning, got.Status)

	ta.api.Wait()
	require.Len(t, ta.runner.jobs, 1)
	job := ta.runner.jobs[0]
	assert.Equal(t, got.ID, job.ID)
	assert.Equal(t, deck, job.DeckPath)
	require.NotNil(t, job.Directives)
	assert.Equal(t, "calm", job.Directives.Tone)
	assert.Equal(t, 1.5, job.Directives.Speed)

	stored, err := ta.store.Get(context.Background(), got.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRunning, stored.Status)
}

func TestSubmitRunUpload(t *testing.T) {
	ta := newTestAPI(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("deck", "lecture.pptx")
	require.NoError(t, err)
	_, err = fw.Write([]byte("pptx bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("directives", `{"voice": "nova"}`))
	require.NoError(t, mw.Close())

	resp, err := http.Post(ta.srv.URL+"/api/runs", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	ta.api.Wait()
	require.Len(t, ta.runner.jobs, 1)
	job := ta.runner.jobs[0]
	assert.Equal(t, filepath.Join(ta.dir, "uploads"), filepath.Dir(job.DeckPath))
	assert.True(t, strings.HasSuffix(job.DeckPath, "_lecture.pptx"))
	data, err := os.ReadFile(job.DeckPath)
	require.NoError(t, err)
	assert.Equal(t, "pptx bytes", string(data))
	assert.Equal(t, "nova", job.Directives.Voice)
}

func TestSubmitRunRejects(t *testing.T) {
	ta := newTestAPI(t)
	pdf := ta.writeDeck(t, "slides.pdf")

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", "{"},
		{"missing path", `{}`},
		{"wrong extension", `{"deck_path": "` + pdf + `"}`},
		{"missing file", `{"deck_path": "` + filepath.Join(ta.dir, "nope.pptx") + `"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ta.srv.URL+"/api/runs", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
	assert.Empty(t, ta.runner.jobs)
}

func TestSubmitRunOutsideAllowedFolders(t *testing.T) {
	ta := newTestAPI(t)

	outside := filepath.Join(t.TempDir(), "secret.pptx")
	require.NoError(t, os.WriteFile(outside, []byte("pptx"), 0644))
	link := filepath.Join(ta.dir, "link.pptx")
	require.NoError(t, os.Symlink(outside, link))

	for _, deck := range []string{outside, link, ta.dir + "/../" + filepath.Base(filepath.Dir(outside)) + "/secret.pptx"} {
		body := `{"deck_path": "` + deck + `"}`
		resp, err := http.Post(ta.srv.URL+"/api/runs", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, deck)
	}
	ta.api.Wait()
	assert.Empty(t, ta.runner.jobs)
}

func TestSubmitRunRemovesRejectedUpload(t *testing.T) {
	ta := newTestAPI(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("deck", "lecture.pptx")
	require.NoError(t, err)
	_, err = fw.Write([]byte("pptx bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("directives", `{"voice": `))
	require.NoError(t, mw.Close())

	resp, err := http.Post(ta.srv.URL+"/api/runs", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	entries, err := os.ReadDir(filepath.Join(ta.dir, "uploads"))
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Empty(t, ta.runner.jobs)
}

func TestListRuns(t *testing.T) {
	ta := newTestAPI(t)

	resp, err := http.Get(ta.srv.URL + "/api/runs")
	require.NoError(t, err)
	raw := new(bytes.Buffer)
	_, err = raw.ReadFrom(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(raw.String()))

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"r1", "r2"} {
		require.NoError(t, ta.store.Save(context.Background(), &models.Report{
			ID: id, DeckPath: id + ".pptx", Status: models.StatusComplete, StartedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	resp, err = http.Get(ta.srv.URL + "/api/runs?limit=1")
	require.NoError(t, err)
	defer resp.Body.Close()
	var runs []models.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&runs))
	require.Len(t, runs, 1)
	assert.Equal(t, "r2", runs[0].ID)

	bad, err := http.Get(ta.srv.URL + "/api/runs?limit=zero")
	require.NoError(t, err)
	bad.Body.Close()
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
}

func TestGetRunAndQuiz(t *testing.T) {
	ta := newTestAPI(t)
	quiz := models.Quiz{Questions: []models.Question{{
		Question: "What is a goroutine?",
		Options:  []string{"1. A thread", "2. A lightweight task", "3. A channel", "4. A mutex"},
		Answer:   "2. A lightweight task",
	}}}
	require.NoError(t, ta.store.Save(context.Background(), &models.Report{
		ID: "done", DeckPath: "d.pptx", Status: models.StatusPartial, FailedSlides: []int{3},
		Quiz: quiz, StartedAt: time.Now(),
	}))

	resp, err := http.Get(ta.srv.URL + "/api/runs/done")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var report models.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, models.StatusPartial, report.Status)
	assert.Equal(t, []int{3}, report.FailedSlides)

	qresp, err := http.Get(ta.srv.URL + "/api/runs/done/quiz")
	require.NoError(t, err)
	defer qresp.Body.Close()
	var got models.Quiz
	require.NoError(t, json.NewDecoder(qresp.Body).Decode(&got))
	assert.Equal(t, quiz, got)
}

func TestGetRunNotFound(t *testing.T) {
	ta := newTestAPI(t)
	for _, path := range []string{"/api/runs/missing", "/api/runs/missing/quiz"} {
		resp, err := http.Get(ta.srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
}

func TestHealth(t *testing.T) {
	ta := newTestAPI(t)
	resp, err := http.Get(ta.srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
