// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package stages

import (
	"errors"
	"fmt"

	"github.com/mdhender/flatcss"
)

// ErrFile is returned when file I/O operations fail.
type ErrFile struct {
	Op   string // mkdir, write, read, stat
	Path string
	Err  error
}

func (e *ErrFile) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ErrFile) Unwrap() error {
	return e.Err
}

// ErrDatabase is returned when ledger operations fail.
type ErrDatabase struct {
	Op  string
	Err error
}

func (e *ErrDatabase) Error() string {
	return fmt.Sprintf("database %s: %v", e.Op, e.Err)
}

func (e *ErrDatabase) Unwrap() error {
	return e.Err
}

// ErrBadExtension is returned for source files that are not ".scss" files.
type ErrBadExtension struct {
	Path string
}

func (e *ErrBadExtension) Error() string {
	return fmt.Sprintf("expected a .scss file, got %s", e.Path)
}

// Error code constants for the ledger.
const (
	ErrCodeLex          = "LEX_ERROR"
	ErrCodeParse        = "PARSE_ERROR"
	ErrCodeBadExtension = "BAD_EXTENSION"
	ErrCodeFile         = "FILE"
	ErrCodeDatabase     = "DATABASE"
	ErrCodeUnknown      = "UNKNOWN"
)

// ErrorCode returns the error code string for a given error.
func ErrorCode(err error) string {
	var lexErr *flatcss.LexError
	var parseErr *flatcss.ParseError
	var extErr *ErrBadExtension
	var fileErr *ErrFile
	var dbErr *ErrDatabase
	switch {
	case errors.As(err, &lexErr):
		return ErrCodeLex
	case errors.As(err, &parseErr):
		return ErrCodeParse
	case errors.As(err, &extErr):
		return ErrCodeBadExtension
	case errors.As(err, &fileErr):
		return ErrCodeFile
	case errors.As(err, &dbErr):
		return ErrCodeDatabase
	default:
		return ErrCodeUnknown
	}
}
