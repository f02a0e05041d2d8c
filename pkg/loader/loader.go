// Package loader discovers note files on disk and hands their text to the parser.
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/stoat/pkg/core"
)

// DefaultPattern matches markdown files at any depth.
const DefaultPattern = "**/*.md"

// ErrBadPattern is returned by New for an invalid glob pattern.
var ErrBadPattern = errors.New("invalid pattern")

// Source is the raw text of one note.
type Source struct {
	ID   core.NoteID
	Path string
	Text []byte
}

// Loader lists and reads the notes below a root directory.
// Paths with an element starting with "." or "_" are never considered.
type Loader struct {
	root     string
	pattern  string
	logger   *slog.Logger
	debounce time.Duration
	onError  func(error)
}

// Option configures a Loader.
type Option func(*Loader)

// WithPattern sets the doublestar pattern, relative to the root, that note files must match.
func WithPattern(pattern string) Option {
	return func(l *Loader) {
		if pattern != "" {
			l.pattern = pattern
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithDebounce sets how long Watch waits for writes to a file to settle.
func WithDebounce(d time.Duration) Option {
	return func(l *Loader) {
		l.debounce = d
	}
}

// WithErrorHandler registers a callback for errors raised while watching.
func WithErrorHandler(fn func(error)) Option {
	return func(l *Loader) {
		l.onError = fn
	}
}

// New creates a Loader for the notes below root.
func New(root string, opts ...Option) (*Loader, error) {
	l := &Loader{
		root:     root,
		pattern:  DefaultPattern,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		debounce: 50 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(l)
	}

	if !doublestar.ValidatePattern(l.pattern) {
		return nil, fmt.Errorf("%w: %q", ErrBadPattern, l.pattern)
	}
	return l, nil
}

// Root returns the directory the loader reads from.
func (l *Loader) Root() string {
	return l.root
}

// Pattern returns the pattern note files must match.
func (l *Loader) Pattern() string {
	return l.pattern
}

// List returns the paths of every note file, sorted.
// Symbolic links are followed; directories are skipped.
func (l *Loader) List() ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(l.root), l.pattern)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", l.root, err)
	}

	paths := make([]string, 0, len(matches))
	for _, rel := range matches {
		if ignored(rel) {
			continue
		}
		path := filepath.Join(l.root, filepath.FromSlash(rel))
		info, err := os.Stat(path)
		if err != nil {
			l.logger.Debug("skipping unreadable entry", "path", path, "error", err)
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		paths = append(paths, path)
	}

	sort.Strings(paths)
	return paths, nil
}

// Load reads one note file.
func (l *Loader) Load(path string) (Source, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("load %s: %w", path, err)
	}
	return Source{ID: IDFromPath(path), Path: path, Text: text}, nil
}

// Match reports whether path, below the root, names a note file.
func (l *Loader) Match(path string) bool {
	if l.hidden(path) {
		return false
	}
	rel, _ := filepath.Rel(l.root, path)
	ok, err := doublestar.Match(l.pattern, filepath.ToSlash(rel))
	return err == nil && ok
}

// IDFromPath derives a note identifier from the file name without its extension.
func IDFromPath(path string) core.NoteID {
	base := filepath.Base(path)
	return core.NoteID(strings.TrimSuffix(base, filepath.Ext(base)))
}

// ignored reports whether a slash separated relative path has a hidden or
// underscore prefixed element.
func ignored(rel string) bool {
	for _, part := range strings.Split(rel, "/") {
		if strings.HasPrefix(part, ".") && part != "." || strings.HasPrefix(part, "_") {
			return true
		}
	}
	return false
}

// hidden reports whether path lies outside the root or below an ignored element.
func (l *Loader) hidden(path string) bool {
	rel, err := filepath.Rel(l.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return true
	}
	return ignored(filepath.ToSlash(rel))
}

// walkDirs calls fn for root and every directory below it that is not ignored.
func (l *Loader) walkDirs(fn func(dir string) error) error {
	return filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != l.root && l.hidden(path) {
			return filepath.SkipDir
		}
		return fn(path)
	})
}
