// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mdhender/flatcss/model"
)

// InsertBatch inserts a Batch and returns its assigned ID.
func (s *SQLiteStore) InsertBatch(ctx context.Context, batch *model.Batch) (int64, error) {
	const query = `
		INSERT INTO batches (created_by, created_at)
		VALUES (?, ?)
	`
	result, err := s.db.ExecContext(ctx, query,
		nullString(batch.CreatedBy),
		batch.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("insert batch: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert batch: %w", err)
	}
	batch.ID = id
	return id, nil
}

// GetBatch retrieves a Batch by ID. It returns nil if there is no such batch.
func (s *SQLiteStore) GetBatch(ctx context.Context, id int64) (*model.Batch, error) {
	const query = `
		SELECT id, created_by, created_at
		FROM batches
		WHERE id = ?
	`
	row := s.db.QueryRowContext(ctx, query, id)
	var batch model.Batch
	var createdBy sql.NullString
	var createdAt string
	if err := row.Scan(&batch.ID, &createdBy, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	if createdBy.Valid {
		batch.CreatedBy = createdBy.String
	}
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		batch.CreatedAt = t
	}
	return &batch, nil
}

// InsertCompile inserts a Compile and returns its assigned ID.
func (s *SQLiteStore) InsertCompile(ctx context.Context, c *model.Compile) (int64, error) {
	const query = `
		INSERT INTO compiles (batch_id, source_path, output_path, fingerprint, status,
		                      rules, bytes, error_code, error_message, compiled_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := s.db.ExecContext(ctx, query,
		c.BatchID,
		c.SourcePath,
		c.OutputPath,
		c.Fingerprint,
		c.Status,
		c.Rules,
		c.Bytes,
		nullString(c.ErrorCode),
		nullString(c.ErrorMsg),
		c.CompiledAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("insert compile: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert compile: %w", err)
	}
	c.ID = id
	return id, nil
}

// GetLastSuccess returns the most recent ok compile of fingerprint to
// outputPath, or nil if there is none.
func (s *SQLiteStore) GetLastSuccess(ctx context.Context, fingerprint, outputPath string) (*model.Compile, error) {
	const query = `
		SELECT id, batch_id, source_path, output_path, fingerprint, status,
		       rules, bytes, error_code, error_message, compiled_at
		FROM compiles
		WHERE fingerprint = ?
		  AND output_path = ?
		  AND status = 'ok'
		ORDER BY id DESC
		LIMIT 1
	`
	c, err := scanCompile(s.db.QueryRowContext(ctx, query, fingerprint, outputPath))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("get last success: %w", err)
	}
	return c, nil
}

// ListCompiles returns the most recent compiles, newest first.
// A limit of zero or less returns every row.
func (s *SQLiteStore) ListCompiles(ctx context.Context, limit int) ([]model.Compile, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	const query = `
		SELECT id, batch_id, source_path, output_path, fingerprint, status,
		       rules, bytes, error_code, error_message, compiled_at
		FROM compiles
		ORDER BY id DESC
		LIMIT ?
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list compiles: %w", err)
	}
	defer rows.Close()

	var list []model.Compile
	for rows.Next() {
		c, err := scanCompile(rows)
		if err != nil {
			return nil, fmt.Errorf("list compiles: %w", err)
		}
		list = append(list, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list compiles: %w", err)
	}
	return list, nil
}

// CompileSummary returns the number of compiles in the batch per status.
func (s *SQLiteStore) CompileSummary(ctx context.Context, batchID int64) (map[string]int, error) {
	const query = `
		SELECT status, COUNT(*)
		FROM compiles
		WHERE batch_id = ?
		GROUP BY status
	`
	rows, err := s.db.QueryContext(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("compile summary: %w", err)
	}
	defer rows.Close()

	summary := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("compile summary: %w", err)
		}
		summary[status] = count
	}
	return summary, rows.Err()
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCompile(row scanner) (*model.Compile, error) {
	var c model.Compile
	var errorCode, errorMsg sql.NullString
	var compiledAt string
	if err := row.Scan(
		&c.ID,
		&c.BatchID,
		&c.SourcePath,
		&c.OutputPath,
		&c.Fingerprint,
		&c.Status,
		&c.Rules,
		&c.Bytes,
		&errorCode,
		&errorMsg,
		&compiledAt,
	); err != nil {
		return nil, err
	}
	c.ErrorCode = errorCode.String
	c.ErrorMsg = errorMsg.String
	if t, err := time.Parse(time.RFC3339Nano, compiledAt); err == nil {
		c.CompiledAt = t
	}
	return &c, nil
}
