package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/nguyentantai21042004/lecture-flow/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	deck_path TEXT NOT NULL,
	work_dir TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	total_slides INTEGER NOT NULL DEFAULT 0,
	failed_slides TEXT NOT NULL DEFAULT '[]',
	final_video TEXT NOT NULL DEFAULT '',
	handout TEXT NOT NULL DEFAULT '',
	quiz TEXT NOT NULL DEFAULT '{}',
	error TEXT NOT NULL DEFAULT '',
	started_at DATETIME NOT NULL,
	finished_at DATETIME
);
CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);`

const selectColumns = `SELECT id, deck_path, work_dir, status, total_slides, failed_slides,
	final_video, handout, quiz, error, started_at, finished_at FROM runs`

type sqliteStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at path.
func Open(path string) (Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return &sqliteStore{db: db}, nil
}

// Save inserts r or replaces the stored run with the same ID.
func (s *sqliteStore) Save(ctx context.Context, r *models.Report) error {
	failed, err := json.Marshal(nonNilInts(r.FailedSlides))
	if err != nil {
		return fmt.Errorf("encode failed slides: %w", err)
	}
	quiz, err := json.Marshal(r.Quiz)
	if err != nil {
		return fmt.Errorf("encode quiz: %w", err)
	}

	var finished sql.NullTime
	if !r.FinishedAt.IsZero() {
		finished = sql.NullTime{Time: r.FinishedAt.UTC(), Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, deck_path, work_dir, status, total_slides, failed_slides,
			final_video, handout, quiz, error, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			deck_path = excluded.deck_path,
			work_dir = excluded.work_dir,
			status = excluded.status,
			total_slides = excluded.total_slides,
			failed_slides = excluded.failed_slides,
			final_video = excluded.final_video,
			handout = excluded.handout,
			quiz = excluded.quiz,
			error = excluded.error,
			started_at = excluded.started_at,
			finished_at = excluded.finished_at`,
		r.ID, r.DeckPath, r.WorkDir, string(r.Status), r.TotalSlides, string(failed),
		r.FinalVideo, r.Handout, string(quiz), r.Error, r.StartedAt.UTC(), finished,
	)
	if err != nil {
		return fmt.Errorf("save run %s: %w", r.ID, err)
	}
	return nil
}

func (s *sqliteStore) Get(ctx context.Context, id string) (*models.Report, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	r, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return r, nil
}

// List returns the most recent runs first.
func (s *sqliteStore) List(ctx context.Context, limit int) ([]*models.Report, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []*models.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(sc scanner) (*models.Report, error) {
	var (
		r        models.Report
		status   string
		failed   string
		quiz     string
		started  time.Time
		finished sql.NullTime
	)
	if err := sc.Scan(&r.ID, &r.DeckPath, &r.WorkDir, &status, &r.TotalSlides, &failed,
		&r.FinalVideo, &r.Handout, &quiz, &r.Error, &started, &finished); err != nil {
		return nil, err
	}

	r.Status = models.RunStatus(status)
	r.StartedAt = started
	if finished.Valid {
		r.FinishedAt = finished.Time
	}
	if err := json.Unmarshal([]byte(failed), &r.FailedSlides); err != nil {
		return nil, fmt.Errorf("decode failed slides: %w", err)
	}
	if err := json.Unmarshal([]byte(quiz), &r.Quiz); err != nil {
		return nil, fmt.Errorf("decode quiz: %w", err)
	}
	return &r, nil
}

func nonNilInts(xs []int) []int {
	if xs == nil {
		return []int{}
	}
	return xs
}
