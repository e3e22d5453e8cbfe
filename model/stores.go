// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package model

import "context"

// Store is the compile ledger.
type Store interface {
	InsertBatch(ctx context.Context, batch *Batch) (int64, error)
	GetBatch(ctx context.Context, id int64) (*Batch, error)

	InsertCompile(ctx context.Context, c *Compile) (int64, error)
	// GetLastSuccess returns the most recent ok compile of the fingerprint
	// to the output path, or nil if there is none.
	GetLastSuccess(ctx context.Context, fingerprint, outputPath string) (*Compile, error)
	ListCompiles(ctx context.Context, limit int) ([]Compile, error)
	CompileSummary(ctx context.Context, batchID int64) (map[string]int, error)

	Close() error
}
