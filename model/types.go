// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package model

import (
	"time"
)

// Batch is one invocation of the compiler over a set of source files.
type Batch struct {
	ID        int64     `json:"id"        db:"id"`
	CreatedBy string    `json:"createdBy" db:"created_by"` // worker or host that ran the batch
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Compile is the outcome of compiling a single source file.
type Compile struct {
	ID          int64     `json:"id"          db:"id"`
	BatchID     int64     `json:"batchId"     db:"batch_id"`
	SourcePath  string    `json:"sourcePath"  db:"source_path"`
	OutputPath  string    `json:"outputPath"  db:"output_path"`
	Fingerprint string    `json:"fingerprint" db:"fingerprint"` // hex BLAKE2b-256 of the source
	Status      string    `json:"status"      db:"status"`
	Rules       int       `json:"rules"       db:"rules"` // number of rules written
	Bytes       int       `json:"bytes"       db:"bytes"` // size of the output
	ErrorCode   string    `json:"errorCode,omitempty"    db:"error_code"`
	ErrorMsg    string    `json:"errorMessage,omitempty" db:"error_message"`
	CompiledAt  time.Time `json:"compiledAt"  db:"compiled_at"`
}

// Compile statuses.
const (
	CompileStatusOk      = "ok"
	CompileStatusFailed  = "failed"
	CompileStatusSkipped = "skipped"
)
