// Package httpapi exposes lecture runs over HTTP: submitting decks and
// reading run reports and quizzes.
package httpapi

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
	"github.com/nguyentantai21042004/lecture-flow/internal/models"
	"github.com/nguyentantai21042004/lecture-flow/internal/processor"
	"github.com/nguyentantai21042004/lecture-flow/internal/store"
)

// maxUploadBytes bounds a multipart deck upload.
const maxUploadBytes = 200 << 20

// Runner executes a lecture job.
type Runner interface {
	Run(ctx context.Context, job processor.Job) (*models.Report, error)
}

// API serves the run endpoints. Submitted runs execute in the background
// under the context given to New.
type API struct {
	ctx       context.Context
	runner    Runner
	store     store.Store
	inputDir  string
	uploadDir string
	logger    logger.Logger
	wg        sync.WaitGroup
}

// New creates the API. Uploaded decks are written to uploadDir; decks named
// by path must live under inputDir or uploadDir.
func New(ctx context.Context, runner Runner, st store.Store, inputDir, uploadDir string, log logger.Logger) *API {
	return &API{
		ctx:       ctx,
		runner:    runner,
		store:     st,
		inputDir:  inputDir,
		uploadDir: uploadDir,
		logger:    log,
	}
}

// Router returns the HTTP routes.
func (a *API) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", a.health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/runs", a.submitRun).Methods(http.MethodPost)
	api.HandleFunc("/runs", a.listRuns).Methods(http.MethodGet)
	api.HandleFunc("/runs/{id}", a.getRun).Methods(http.MethodGet)
	api.HandleFunc("/runs/{id}/quiz", a.getQuiz).Methods(http.MethodGet)
	return r
}

// Wait blocks until every submitted run has returned.
func (a *API) Wait() {
	a.wg.Wait()
}
