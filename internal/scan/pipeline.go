package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/google/uuid"
	ignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"

	"github.com/haltialabs/snapsum/internal/snapshot"
)

// Options configures a snapshot run.
type Options struct {
	// Root is the directory to scan. Must exist and be a directory.
	Root string
	// Output is the snapshot file to create. It is only created after the
	// root has been validated, so a bad root never leaves an empty file.
	Output string
	// Exclude optionally filters paths with gitignore-style rules.
	Exclude *ignore.GitIgnore
	// Logger receives per-path diagnostics. Defaults to a nop logger.
	Logger *zap.Logger
	// Reporter receives progress updates. Nil disables progress output.
	Reporter *Reporter
}

// Summary describes one completed scan run.
type Summary struct {
	ScanID    uuid.UUID
	Root      string
	Output    string
	Processed int
	Skipped   int
	Elapsed   time.Duration
}

// Run walks the tree under opts.Root, hashes every regular file, and appends
// one record per successfully hashed file to the snapshot at opts.Output.
//
// The pipeline is a single logical thread: the walker produces paths, the
// hasher consumes them, and the reporter samples the running count. Per-file
// failures are classified, logged, and skipped; only an invalid root or a
// sink write failure aborts the run. Records already written remain a valid
// partial snapshot in that case.
func Run(ctx context.Context, opts Options) (Summary, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	scanID := uuid.New()
	start := time.Now()
	sum := Summary{ScanID: scanID, Output: opts.Output}

	walker, err := NewWalker(opts.Root,
		WithExcludes(opts.Exclude),
		WithLogger(logger))
	if err != nil {
		return sum, err
	}
	sum.Root = walker.Root()

	out, err := os.Create(opts.Output)
	if err != nil {
		return sum, fmt.Errorf("creating snapshot %s: %w", opts.Output, err)
	}
	defer out.Close()

	sink, err := snapshot.NewWriter(out)
	if err != nil {
		return sum, fmt.Errorf("writing snapshot header: %w", err)
	}

	logger.Info("scan started",
		zap.String("scan_id", scanID.String()),
		zap.String("root", sum.Root),
		zap.String("output", opts.Output))

	seen := 0
	for path := range walker.Files(ctx) {
		seen++

		digest, err := DigestFile(path)
		if err != nil {
			sum.Skipped++
			if errors.Is(err, fs.ErrPermission) {
				logger.Warn("access denied, skipping file",
					zap.String("path", path))
			} else {
				logger.Warn("failed to hash file, skipping",
					zap.String("path", path),
					zap.Error(err))
			}
			opts.Reporter.Observe(seen)
			continue
		}

		if err := sink.Write(snapshot.Record{Path: path, Digest: digest}); err != nil {
			sum.Elapsed = time.Since(start)
			return sum, fmt.Errorf("writing record for %s: %w", path, err)
		}
		sum.Processed++
		opts.Reporter.Observe(seen)
	}

	if err := out.Sync(); err != nil {
		logger.Warn("snapshot fsync failed", zap.Error(err))
	}

	sum.Elapsed = time.Since(start)
	opts.Reporter.Done(seen)

	logger.Info("scan finished",
		zap.String("scan_id", scanID.String()),
		zap.Int("processed", sum.Processed),
		zap.Int("skipped", sum.Skipped),
		zap.Int("dirs_listed", walker.DirsListed()),
		zap.Int("dirs_skipped", walker.DirsSkipped()),
		zap.Duration("elapsed", sum.Elapsed))

	return sum, ctx.Err()
}
