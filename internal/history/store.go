// Package history records generation jobs in a local SQLite database so past
// runs can be listed and inspected.
package history

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Job is a single recorded generation run.
type Job struct {
	ID            string
	InputPath     string
	OutputDir     string
	ScenarioCount int
	TestCount     int
	FileCount     int
	WarningCount  int
	Success       bool
	ErrorMessage  string
	Duration      time.Duration
	CreatedAt     time.Time
}

// Store manages the SQLite database holding run history.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (creating if needed) the history database at dbPath.
// ":memory:" is supported for tests.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// busy_timeout first so the remaining pragmas wait on locks.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// execWithRetry executes a SQL statement with exponential backoff retry on
// "database is locked" errors, which can occur during concurrent
// initialization of the same database file.
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Record persists a job, assigning it a fresh UUID if one is not set.
// Returns the job ID.
func (s *Store) Record(job Job) (string, error) {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(`
		INSERT INTO generation_jobs
			(id, input_path, output_dir, scenario_count, test_count,
			 file_count, warning_count, success, error_message,
			 duration_secs, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.ID, job.InputPath, job.OutputDir, job.ScenarioCount, job.TestCount,
		job.FileCount, job.WarningCount, job.Success, job.ErrorMessage,
		int64(job.Duration.Seconds()), job.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("record job: %w", err)
	}
	return job.ID, nil
}

// Recent returns up to limit jobs, newest first.
func (s *Store) Recent(limit int) ([]Job, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT id, input_path, output_dir, scenario_count, test_count,
		       file_count, warning_count, success, error_message,
		       duration_secs, created_at
		FROM generation_jobs
		ORDER BY created_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var job Job
		var durationSecs int64
		if err := rows.Scan(&job.ID, &job.InputPath, &job.OutputDir,
			&job.ScenarioCount, &job.TestCount, &job.FileCount,
			&job.WarningCount, &job.Success, &job.ErrorMessage,
			&durationSecs, &job.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		job.Duration = time.Duration(durationSecs) * time.Second
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// Clear removes all recorded jobs.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM generation_jobs`); err != nil {
		return fmt.Errorf("clear jobs: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
