package db

import (
	"fmt"
	"time"
)

// File statuses recorded in run_files.
const (
	StatusConverted = "converted"
	StatusSkipped   = "skipped"
	StatusError     = "error"
)

// RunInfo summarizes one recorded conversion run.
type RunInfo struct {
	RunID     int64
	Command   string
	StartedAt time.Time
	Converted int
	Skipped   int
	Errors    int
}

// FileResult is one per-file outcome within a run.
type FileResult struct {
	Path   string
	Status string
	Detail string
}

// InsertRun opens a new run for the given command, returning the run_id.
func (db *DB) InsertRun(command string) (int64, error) {
	result, err := db.Exec("INSERT INTO runs (command) VALUES (?)", command)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return runID, nil
}

// RecordFile stores one per-file outcome for a run.
func (db *DB) RecordFile(runID int64, path, status, detail string) error {
	_, err := db.Exec(`
		INSERT INTO run_files (run_id, path, status, detail)
		VALUES (?, ?, ?, ?)
	`, runID, path, status, detail)
	if err != nil {
		return fmt.Errorf("failed to record file: %w", err)
	}
	return nil
}

// FinishRun writes the final counters for a run.
func (db *DB) FinishRun(runID int64, converted, skipped, errors int) error {
	_, err := db.Exec(`
		UPDATE runs SET converted = ?, skipped = ?, errors = ?
		WHERE run_id = ?
	`, converted, skipped, errors, runID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]RunInfo, error) {
	rows, err := db.Query(`
		SELECT run_id, command, started_at, converted, skipped, errors
		FROM runs ORDER BY run_id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		var r RunInfo
		if err := rows.Scan(&r.RunID, &r.Command, &r.StartedAt, &r.Converted, &r.Skipped, &r.Errors); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRunFiles returns the per-file outcomes of a run in insertion order.
func (db *DB) GetRunFiles(runID int64) ([]FileResult, error) {
	rows, err := db.Query(`
		SELECT path, status, COALESCE(detail, '')
		FROM run_files WHERE run_id = ? ORDER BY file_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run files: %w", err)
	}
	defer rows.Close()

	var files []FileResult
	for rows.Next() {
		var f FileResult
		if err := rows.Scan(&f.Path, &f.Status, &f.Detail); err != nil {
			return nil, fmt.Errorf("failed to scan run file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}
