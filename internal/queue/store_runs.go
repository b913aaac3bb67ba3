package queue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const runColumns = "id, name, prompt, status, scene_count, run_dir, output_path, error_message, created_at, updated_at"

// CreateRun records a new pending run.
func (s *Store) CreateRun(ctx context.Context, id, name, prompt, runDir string) (Record, error) {
	now := time.Now().UTC()
	record := Record{
		ID:        id,
		Name:      name,
		Prompt:    prompt,
		Status:    StatusPending,
		RunDir:    runDir,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := s.execWithRetry(ensureContext(ctx),
		"INSERT INTO runs ("+runColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		record.ID, record.Name, record.Prompt, string(record.Status), record.SceneCount,
		record.RunDir, record.OutputPath, record.ErrorMessage,
		record.CreatedAt.Format(time.RFC3339), record.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return Record{}, fmt.Errorf("create run: %w", err)
	}
	return record, nil
}

// UpdateStatus advances a run's lifecycle status.
func (s *Store) UpdateStatus(ctx context.Context, id string, status Status) error {
	return s.updateRun(ctx, id,
		"UPDATE runs SET status = ?, updated_at = ? WHERE id = ?",
		string(status), time.Now().UTC().Format(time.RFC3339), id)
}

// SetSceneCount records how many scenes the validated script carries.
func (s *Store) SetSceneCount(ctx context.Context, id string, count int) error {
	return s.updateRun(ctx, id,
		"UPDATE runs SET scene_count = ?, updated_at = ? WHERE id = ?",
		count, time.Now().UTC().Format(time.RFC3339), id)
}

// MarkCompleted finalizes a successful run with its output video path.
func (s *Store) MarkCompleted(ctx context.Context, id, outputPath string) error {
	return s.updateRun(ctx, id,
		"UPDATE runs SET status = ?, output_path = ?, updated_at = ? WHERE id = ?",
		string(StatusCompleted), outputPath, time.Now().UTC().Format(time.RFC3339), id)
}

// MarkFailed finalizes a failed run with the failure message.
func (s *Store) MarkFailed(ctx context.Context, id, message string) error {
	return s.updateRun(ctx, id,
		"UPDATE runs SET status = ?, error_message = ?, updated_at = ? WHERE id = ?",
		string(StatusFailed), message, time.Now().UTC().Format(time.RFC3339), id)
}

func (s *Store) updateRun(ctx context.Context, id, query string, args ...any) error {
	ctx = ensureContext(ctx)
	var result sql.Result
	err := retryOnBusy(ctx, func() error {
		var execErr error
		result, execErr = s.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("update run %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update run %s: rows affected: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("update run %s: %w", id, ErrRunNotFound)
	}
	return nil
}

// GetRun fetches one run by identifier.
func (s *Store) GetRun(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ensureContext(ctx),
		"SELECT "+runColumns+" FROM runs WHERE id = ?", id)
	record, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("get run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return Record{}, fmt.Errorf("get run %s: %w", id, err)
	}
	return record, nil
}

// ListRuns returns runs newest-first, at most limit entries (0 means all).
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Record, error) {
	query := "SELECT " + runColumns + " FROM runs ORDER BY created_at DESC, id DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		record, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Record, error) {
	var (
		record               Record
		status               string
		createdAt, updatedAt string
	)
	err := row.Scan(&record.ID, &record.Name, &record.Prompt, &status, &record.SceneCount,
		&record.RunDir, &record.OutputPath, &record.ErrorMessage, &createdAt, &updatedAt)
	if err != nil {
		return Record{}, err
	}
	record.Status = Status(status)
	if parsed, parseErr := time.Parse(time.RFC3339, createdAt); parseErr == nil {
		record.CreatedAt = parsed
	}
	if parsed, parseErr := time.Parse(time.RFC3339, updatedAt); parseErr == nil {
		record.UpdatedAt = parsed
	}
	return record, nil
}
