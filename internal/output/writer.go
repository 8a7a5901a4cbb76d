// Package output writes rendered pages and static assets below the output root.
package output

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/postbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/postbuilder/internal/logfields"
	"git.home.luguber.info/inful/postbuilder/internal/metrics"
)

// HTMLExtension marks files passed through the minifier.
const HTMLExtension = ".html"

// Kind labels what an output file is, for metrics.
type Kind string

const (
	KindPage    Kind = "page"
	KindListing Kind = "listing"
	KindAsset   Kind = "asset"
)

// Stats counts files written by a Writer.
type Stats struct {
	Files    int   `json:"files"`
	Minified int   `json:"minified"`
	Bytes    int64 `json:"bytes"`
}

// Writer writes files below a root directory, minifying HTML.
type Writer struct {
	root     string
	minifier *Minifier
	recorder metrics.Recorder
	stats    Stats
}

// NewWriter returns a Writer rooted at root. A nil recorder disables metrics.
func NewWriter(root string, minifier *Minifier, recorder metrics.Recorder) *Writer {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Writer{root: root, minifier: minifier, recorder: recorder}
}

// Root returns the output root directory.
func (w *Writer) Root() string { return w.root }

// Stats returns the running totals.
func (w *Writer) Stats() Stats { return w.stats }

// Write stores data at rel below the root, creating parent directories.
// Files with the .html extension are minified first; anything else is written unchanged.
func (w *Writer) Write(kind Kind, rel string, data []byte) error {
	dst, err := w.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return fsError(err, "create output directory", dst)
	}

	minified := false
	if isHTML(dst) && w.minifier != nil {
		if data, err = w.minify(data, rel); err != nil {
			return err
		}
		minified = true
	}

	// #nosec G306 -- published site files are world readable
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fsError(err, "write output file", dst)
	}
	w.count(kind, minified, int64(len(data)))
	slog.Debug("Wrote file", logfields.Path(dst), logfields.Bytes(len(data)), slog.Bool("minified", minified))
	return nil
}

// CopyTree mirrors every regular file below src into the output root.
// HTML files are minified on the way; all other files are copied byte for byte.
func (w *Writer) CopyTree(src string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fsError(err, "read assets directory", src)
	}
	if !info.IsDir() {
		return fsError(fmt.Errorf("%s is not a directory", src), "read assets directory", src)
	}
	root, err := filepath.Abs(w.root)
	if err != nil {
		return fsError(err, "resolve output root", w.root)
	}

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fsError(err, "walk assets directory", path)
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return fsError(err, "walk assets directory", path)
		}
		if d.IsDir() {
			// the output root itself must never be copied into itself
			if abs, err := filepath.Abs(path); err == nil && abs == root {
				return filepath.SkipDir
			}
			if err := os.MkdirAll(filepath.Join(w.root, rel), 0o750); err != nil {
				return fsError(err, "create output directory", rel)
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return w.copyFile(path, rel)
	})
}

func (w *Writer) copyFile(src, rel string) error {
	if isHTML(src) {
		// #nosec G304 -- src is below the configured assets directory
		data, err := os.ReadFile(src)
		if err != nil {
			return fsError(err, "read asset", src)
		}
		return w.Write(KindAsset, rel, data)
	}

	dst, err := w.resolve(rel)
	if err != nil {
		return err
	}
	in, err := os.Open(src) // #nosec G304 -- src is below the configured assets directory
	if err != nil {
		return fsError(err, "read asset", src)
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst) // #nosec G304 -- dst is resolved below the output root
	if err != nil {
		return fsError(err, "create output file", dst)
	}
	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fsError(err, "copy asset", dst)
	}

	w.count(KindAsset, false, n)
	slog.Debug("Copied asset", logfields.Path(dst), logfields.Bytes(int(n)))
	return nil
}

func (w *Writer) minify(data []byte, rel string) ([]byte, error) {
	if w.minifier == nil {
		return data, nil
	}
	out, err := w.minifier.HTML(data)
	if err != nil {
		return nil, ferrors.BuildError("minify html").WithCause(err).
			WithContext("path", rel).Build()
	}
	return out, nil
}

// resolve joins rel onto the root, rejecting paths that escape it.
func (w *Writer) resolve(rel string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(rel))
	if rel == "" || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", ferrors.FileSystemError("output path escapes output root").
			WithCause(errors.New(rel)).WithContext("path", rel).Build()
	}
	return filepath.Join(w.root, clean), nil
}

func (w *Writer) count(kind Kind, minified bool, n int64) {
	w.stats.Files++
	w.stats.Bytes += n
	if minified {
		w.stats.Minified++
	}
	w.recorder.IncFileWritten(string(kind), minified)
}

func isHTML(path string) bool {
	return filepath.Ext(path) == HTMLExtension
}

func fsError(err error, msg, path string) error {
	if ferrors.IsClassified(err) {
		return err
	}
	return ferrors.FileSystemError(msg).WithCause(err).WithContext("path", path).Build()
}
