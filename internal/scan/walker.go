package scan

import (
	"context"
	"fmt"
	"iter"
	"os"
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"
)

// Walker enumerates regular files beneath a root directory using an explicit
// stack of pending directories instead of call-stack recursion, so traversal
// depth is bounded by memory rather than goroutine stack size.
//
// Symlinks are never followed: a symlinked directory is not descended and a
// symlinked file is not yielded. Inaccessible directories are logged and
// treated as empty rather than aborting the walk.
type Walker struct {
	root    string
	exclude *ignore.GitIgnore
	log     *zap.Logger

	dirsListed  int
	dirsSkipped int
}

// WalkerOption configures a Walker.
type WalkerOption func(*Walker)

// WithExcludes filters the walk through a gitignore-style matcher.
// Matched files are not yielded and matched directories are not descended.
func WithExcludes(m *ignore.GitIgnore) WalkerOption {
	return func(w *Walker) { w.exclude = m }
}

// WithLogger sets the logger used for per-directory diagnostics.
func WithLogger(l *zap.Logger) WalkerOption {
	return func(w *Walker) { w.log = l }
}

// NewWalker validates root and returns a Walker for it. A root that does not
// exist or is not a directory is a fatal precondition and fails here, before
// any traversal work happens.
func NewWalker(root string, opts ...WalkerOption) (*Walker, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving scan root %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("scan root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s: %w", root, ErrRootNotDirectory)
	}

	w := &Walker{root: abs, log: zap.NewNop()}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Root returns the absolute path the walker was created for.
func (w *Walker) Root() string {
	return w.root
}

// DirsListed returns the number of directories expanded so far.
func (w *Walker) DirsListed() int { return w.dirsListed }

// DirsSkipped returns the number of directories that could not be listed.
func (w *Walker) DirsSkipped() int { return w.dirsSkipped }

// Files returns a lazy, single-pass sequence of absolute file paths beneath
// the root. Each call starts a fresh traversal. The sequence is finite and
// stops early if ctx is cancelled or the consumer breaks out of the loop.
//
// Within one directory, files are yielded before subdirectories are pushed,
// and the pending-directory stack is LIFO, so the walk is depth-first. No
// ordering across the whole tree is guaranteed beyond that.
func (w *Walker) Files(ctx context.Context) iter.Seq[string] {
	return func(yield func(string) bool) {
		pending := []string{w.root}

		for len(pending) > 0 {
			// Cancellation check once per directory expansion keeps a
			// long walk responsive without any per-file overhead.
			if ctx.Err() != nil {
				return
			}

			dir := pending[len(pending)-1]
			pending = pending[:len(pending)-1]

			entries, err := os.ReadDir(dir)
			if err != nil {
				// Permission denied or the directory vanished mid-scan.
				// Either way this subtree contributes nothing; the scan
				// itself carries on.
				w.dirsSkipped++
				w.log.Warn("skipping unreadable directory",
					zap.String("dir", dir),
					zap.Error(err))
				continue
			}
			w.dirsListed++

			var subdirs []string
			for _, entry := range entries {
				path := filepath.Join(dir, entry.Name())
				if entry.Type()&os.ModeSymlink != 0 {
					continue
				}
				if entry.IsDir() {
					if !w.excluded(path) {
						subdirs = append(subdirs, path)
					}
					continue
				}
				if !entry.Type().IsRegular() {
					continue
				}
				if w.excluded(path) {
					continue
				}
				if !yield(path) {
					return
				}
			}
			pending = append(pending, subdirs...)
		}
	}
}

func (w *Walker) excluded(path string) bool {
	if w.exclude == nil {
		return false
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	return w.exclude.MatchesPath(rel)
}
