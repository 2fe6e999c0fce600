package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
	"github.com/nguyentantai21042004/lecture-flow/internal/models"
	"github.com/nguyentantai21042004/lecture-flow/internal/processor"
	"github.com/nguyentantai21042004/lecture-flow/internal/store"
)

// SubmitRequest starts a run on a deck already on the server.
type SubmitRequest struct {
	DeckPath   string             `json:"deck_path"`
	Directives *models.Directives `json:"directives,omitempty"`
}

// SubmitResponse is returned when a run has been accepted.
type SubmitResponse struct {
	ID     string           `json:"id"`
	Status models.RunStatus `json:"status"`
}

// submitRun accepts either a JSON SubmitRequest or a multipart upload with
// the deck in the "deck" field.
// POST /api/runs
func (a *API) submitRun(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()

	var (
		req      SubmitRequest
		uploaded string
		err      error
	)
	// An upload that does not become a run is removed.
	accepted := false
	defer func() {
		if uploaded != "" && !accepted {
			os.Remove(uploaded)
		}
	}()

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		uploaded, err = a.saveUpload(w, r, id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		req.DeckPath = uploaded
		if v := r.FormValue("directives"); v != "" {
			req.Directives = &models.Directives{}
			if err := json.Unmarshal([]byte(v), req.Directives); err != nil {
				http.Error(w, "Invalid directives JSON", http.StatusBadRequest)
				return
			}
		}
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if req.DeckPath == "" {
		http.Error(w, "deck_path is required", http.StatusBadRequest)
		return
	}
	if strings.ToLower(filepath.Ext(req.DeckPath)) != ".pptx" {
		http.Error(w, "deck must be a .pptx file", http.StatusBadRequest)
		return
	}
	if _, err := os.Stat(req.DeckPath); err != nil {
		http.Error(w, "deck not found", http.StatusBadRequest)
		return
	}
	if !a.allowed(req.DeckPath) {
		http.Error(w, "deck must be inside the input or upload folder", http.StatusForbidden)
		return
	}

	// Recorded up front so the run is visible while it waits for a slot.
	if err := a.store.Save(r.Context(), &models.Report{
		ID:        id,
		DeckPath:  req.DeckPath,
		Status:    models.StatusRunning,
		StartedAt: time.Now().UTC(),
	}); err != nil {
		a.logger.Error(r.Context(), "Failed to record run %s: %v", id, err)
		http.Error(w, "Failed to record run", http.StatusInternalServerError)
		return
	}

	job := processor.Job{ID: id, DeckPath: req.DeckPath, Directives: req.Directives}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		ctx := logger.WithRunID(a.ctx, id)
		if _, err := a.runner.Run(ctx, job); err != nil {
			a.logger.Error(ctx, "Run %s failed: %v", id, err)
		}
	}()

	accepted = true
	a.logger.Info(r.Context(), "Accepted run %s for %s", id, req.DeckPath)
	writeJSON(w, http.StatusAccepted, SubmitResponse{ID: id, Status: models.StatusRunning})
}

// saveUpload stores the multipart "deck" file as <uploadDir>/<id>_<name>.
// Optional directives arrive as a JSON "directives" form value.
func (a *API) saveUpload(w http.ResponseWriter, r *http.Request, id string) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return "", fmt.Errorf("invalid multipart form: %w", err)
	}

	file, header, err := r.FormFile("deck")
	if err != nil {
		return "", fmt.Errorf("deck file is required")
	}
	defer file.Close()

	name := filepath.Base(header.Filename)
	if strings.ToLower(filepath.Ext(name)) != ".pptx" {
		return "", fmt.Errorf("deck must be a .pptx file")
	}

	if err := os.MkdirAll(a.uploadDir, 0755); err != nil {
		return "", fmt.Errorf("create upload folder: %w", err)
	}
	dest := filepath.Join(a.uploadDir, id+"_"+name)
	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		os.Remove(dest)
		return "", fmt.Errorf("store upload: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("store upload: %w", err)
	}
	return dest, nil
}

// allowed reports whether path resolves to a file under the input or the
// upload folder. Symlinks are resolved first.
func (a *API) allowed(path string) bool {
	target := resolve(path)
	for _, root := range []string{a.inputDir, a.uploadDir} {
		if root == "" {
			continue
		}
		rel, err := filepath.Rel(resolve(root), target)
		if err != nil {
			continue
		}
		if rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func resolve(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

// GET /api/runs?limit=N
func (a *API) listRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	runs, err := a.store.List(r.Context(), limit)
	if err != nil {
		a.logger.Error(r.Context(), "Failed to list runs: %v", err)
		http.Error(w, "Failed to list runs", http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []*models.Report{}
	}
	writeJSON(w, http.StatusOK, runs)
}

// GET /api/runs/{id}
func (a *API) getRun(w http.ResponseWriter, r *http.Request) {
	report, ok := a.lookup(w, r)
	if !ok {
		return
	}
	if report.FailedSlides == nil {
		report.FailedSlides = []int{}
	}
	writeJSON(w, http.StatusOK, report)
}

// GET /api/runs/{id}/quiz
func (a *API) getQuiz(w http.ResponseWriter, r *http.Request) {
	report, ok := a.lookup(w, r)
	if !ok {
		return
	}
	quiz := report.Quiz
	if quiz.Questions == nil {
		quiz.Questions = []models.Question{}
	}
	writeJSON(w, http.StatusOK, quiz)
}

func (a *API) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) lookup(w http.ResponseWriter, r *http.Request) (*models.Report, bool) {
	id := mux.Vars(r)["id"]
	report, err := a.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "Run not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		a.logger.Error(r.Context(), "Failed to load run %s: %v", id, err)
		http.Error(w, "Failed to load run", http.StatusInternalServerError)
		return nil, false
	}
	return report, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
