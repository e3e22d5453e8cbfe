// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package stages

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mdhender/flatcss"
	"github.com/mdhender/flatcss/model"
	"github.com/spf13/afero"
	"golang.org/x/crypto/blake2b"
)

// SourceExt is the extension of the files the service compiles.
const SourceExt = ".scss"

// OutputExt replaces SourceExt on the files the service writes.
const OutputExt = ".css"

// CompileService reads nested style sheets, compiles them, and writes the
// flat CSS next to the source or into an output directory.
type CompileService struct {
	store     CompileStore // optional ledger
	outputDir string
	workerID  string
	force     bool
	options   []flatcss.Option
	logger    *slog.Logger // optional lexer and parser tracing
	fs        afero.Fs
}

// CompileStore defines the ledger operations needed by CompileService.
type CompileStore interface {
	InsertBatch(ctx context.Context, batch *model.Batch) (int64, error)
	InsertCompile(ctx context.Context, c *model.Compile) (int64, error)
	GetLastSuccess(ctx context.Context, fingerprint, outputPath string) (*model.Compile, error)
}

// NewCompileService creates a new CompileService.
// The store may be nil, in which case nothing is recorded and no input
// is ever skipped. An empty outputDir writes each output next to its source.
func NewCompileService(store CompileStore, outputDir, workerID string, options ...flatcss.Option) *CompileService {
	if workerID == "" {
		hostname, _ := os.Hostname()
		workerID = fmt.Sprintf("%s:%d", hostname, os.Getpid())
	}
	return &CompileService{
		store:     store,
		outputDir: outputDir,
		workerID:  workerID,
		options:   options,
		fs:        afero.NewOsFs(),
	}
}

// SetFS sets the filesystem for testing.
func (s *CompileService) SetFS(fs afero.Fs) {
	s.fs = fs
}

// SetLogger sends lexer and parser traces to logger. A nil logger turns
// tracing off.
func (s *CompileService) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// SetForce makes the service compile inputs even when the ledger shows
// the same source was already compiled to an output that still exists.
func (s *CompileService) SetForce(flag bool) {
	s.force = flag
}

// CompileResult is the outcome of compiling one file.
type CompileResult struct {
	SourcePath  string
	OutputPath  string
	Fingerprint string
	Skipped     bool // true if the ledger showed the output is current
	Rules       int
	Bytes       int
}

// OutputPath returns the path the output for source is written to.
// The ".scss" extension (in any case) is replaced with ".css"; when
// outputDir is not empty, the file is placed there instead of next to
// the source.
func OutputPath(source, outputDir string) string {
	name := strings.TrimSuffix(source, filepath.Ext(source)) + OutputExt
	if outputDir != "" {
		name = filepath.Join(outputDir, filepath.Base(name))
	}
	return name
}

// Fingerprint returns the hex BLAKE2b-256 digest of the source and the
// flattener settings used to compile it. Changing either one changes the
// fingerprint, so the ledger never skips an output rendered differently.
func Fingerprint(data []byte, settings string) string {
	h, _ := blake2b.New256(nil) // only fails for an oversized key
	h.Write(data)
	h.Write([]byte{0})
	h.Write([]byte(settings))
	return hex.EncodeToString(h.Sum(nil))
}

// CompileFile compiles a single source file.
// When batchID is not zero and the service has a store, the outcome is
// recorded in the ledger, including failures.
func (s *CompileService) CompileFile(ctx context.Context, batchID int64, path string) (*CompileResult, error) {
	result := &CompileResult{
		SourcePath: path,
		OutputPath: OutputPath(path, s.outputDir),
	}
	err := s.compileFile(ctx, result)
	if recErr := s.record(ctx, batchID, result, err); recErr != nil && err == nil {
		err = recErr
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *CompileService) compileFile(ctx context.Context, result *CompileResult) error {
	if !strings.EqualFold(filepath.Ext(result.SourcePath), SourceExt) {
		return &ErrBadExtension{Path: result.SourcePath}
	}
	settings, err := flatcss.Settings(s.options...)
	if err != nil {
		return err
	}

	data, err := afero.ReadFile(s.fs, result.SourcePath)
	if err != nil {
		return &ErrFile{Op: "read", Path: result.SourcePath, Err: err}
	}
	result.Fingerprint = Fingerprint(data, settings)

	if skip, err := s.isCurrent(ctx, result); err != nil {
		return err
	} else if skip {
		result.Skipped = true
		return nil
	}

	var buf bytes.Buffer
	rules, err := s.compile(result.SourcePath, data, &buf)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(result.OutputPath); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return &ErrFile{Op: "mkdir", Path: dir, Err: err}
		}
	}
	if err := afero.WriteFile(s.fs, result.OutputPath, buf.Bytes(), 0o644); err != nil {
		return &ErrFile{Op: "write", Path: result.OutputPath, Err: err}
	}
	result.Rules, result.Bytes = rules, buf.Len()
	return nil
}

// CompileTo compiles a single source file and writes the output to w
// instead of the output file. Nothing is recorded in the ledger.
func (s *CompileService) CompileTo(w io.Writer, path string) error {
	if !strings.EqualFold(filepath.Ext(path), SourceExt) {
		return &ErrBadExtension{Path: path}
	}
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return &ErrFile{Op: "read", Path: path, Err: err}
	}
	// render into a buffer so that a failure writes nothing to w
	var buf bytes.Buffer
	if _, err := s.compile(path, data, &buf); err != nil {
		return err
	}
	_, err = w.Write(buf.Bytes())
	return err
}

// compile runs the pipeline and returns the number of rules written.
func (s *CompileService) compile(path string, data []byte, w io.Writer) (int, error) {
	tokens, err := flatcss.NewLexer(path, data, s.logger).ScanAll()
	if err != nil {
		return 0, err
	}
	blocks, err := flatcss.ParseWithLogger(tokens, s.logger)
	if err != nil {
		return 0, err
	}
	rules, err := flatcss.Rules(blocks, s.options...)
	if err != nil {
		return 0, err
	}
	if err := flatcss.WriteRules(w, rules, s.options...); err != nil {
		return 0, err
	}
	return len(rules), nil
}

// isCurrent reports whether the ledger has a successful compile of the
// same source to the same output, and that output still exists.
func (s *CompileService) isCurrent(ctx context.Context, result *CompileResult) (bool, error) {
	if s.store == nil || s.force {
		return false, nil
	}
	last, err := s.store.GetLastSuccess(ctx, result.Fingerprint, result.OutputPath)
	if err != nil {
		return false, &ErrDatabase{Op: "get last success", Err: err}
	} else if last == nil {
		return false, nil
	}
	exists, err := afero.Exists(s.fs, result.OutputPath)
	if err != nil {
		return false, &ErrFile{Op: "stat", Path: result.OutputPath, Err: err}
	}
	if exists {
		result.Rules, result.Bytes = last.Rules, last.Bytes
	}
	return exists, nil
}

// record writes the outcome of a compile to the ledger.
func (s *CompileService) record(ctx context.Context, batchID int64, result *CompileResult, compileErr error) error {
	if s.store == nil || batchID == 0 {
		return nil
	}
	c := &model.Compile{
		BatchID:     batchID,
		SourcePath:  result.SourcePath,
		OutputPath:  result.OutputPath,
		Fingerprint: result.Fingerprint,
		Status:      model.CompileStatusOk,
		Rules:       result.Rules,
		Bytes:       result.Bytes,
		CompiledAt:  time.Now().UTC(),
	}
	if compileErr != nil {
		c.Status = model.CompileStatusFailed
		c.ErrorCode = ErrorCode(compileErr)
		c.ErrorMsg = compileErr.Error()
	} else if result.Skipped {
		c.Status = model.CompileStatusSkipped
	}
	if _, err := s.store.InsertCompile(ctx, c); err != nil {
		return &ErrDatabase{Op: "insert compile", Err: err}
	}
	return nil
}

// FileResult pairs a source path with its result or error.
type FileResult struct {
	Path   string
	Result *CompileResult // nil when Err is set
	Err    error
}

// BatchResult summarizes a batch.
type BatchResult struct {
	BatchID int64 // zero when the service has no store
	Files   []FileResult
	Ok      int
	Skipped int
	Failed  int
}

// CompileBatch compiles every path. A failing file does not stop the
// batch; its error is kept in the FileResult. The returned error is only
// set when the batch could not be started or the context was cancelled.
func (s *CompileService) CompileBatch(ctx context.Context, paths []string) (*BatchResult, error) {
	br := &BatchResult{}
	if s.store != nil {
		id, err := s.store.InsertBatch(ctx, &model.Batch{
			CreatedBy: s.workerID,
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			return nil, &ErrDatabase{Op: "insert batch", Err: err}
		}
		br.BatchID = id
	}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return br, err
		}
		result, err := s.CompileFile(ctx, br.BatchID, path)
		br.Files = append(br.Files, FileResult{Path: path, Result: result, Err: err})
		switch {
		case err != nil:
			br.Failed++
		case result.Skipped:
			br.Skipped++
		default:
			br.Ok++
		}
	}

	return br, nil
}
