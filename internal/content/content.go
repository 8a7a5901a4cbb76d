// Package content locates post source files on disk.
package content

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrRootNotFound indicates the content root does not exist.
	ErrRootNotFound = errors.New("content root not found")

	// ErrRootNotDir indicates the content root is a regular file.
	ErrRootNotDir = errors.New("content root is not a directory")

	// ErrWalkFailed indicates traversal of the content root failed part way.
	ErrWalkFailed = errors.New("content directory walk failed")
)

// Locate yields every regular file below root whose name ends with ext.
//
// Paths are yielded in lexical order (filepath.WalkDir) joined onto root.
// The sequence is lazy and stops at the first error, which is yielded once.
func Locate(root, ext string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		info, err := os.Stat(root)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			yield("", fmt.Errorf("%w: %s", ErrRootNotFound, root))
			return
		case err != nil:
			yield("", fmt.Errorf("%w: %s: %w", ErrWalkFailed, root, err))
			return
		case !info.IsDir():
			yield("", fmt.Errorf("%w: %s", ErrRootNotDir, root))
			return
		}

		stopped := false
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.Type().IsRegular() || !strings.HasSuffix(d.Name(), ext) {
				return nil
			}
			if !yield(path, nil) {
				stopped = true
				return fs.SkipAll
			}
			return nil
		})
		if err != nil && !stopped {
			yield("", fmt.Errorf("%w: %s: %w", ErrWalkFailed, root, err))
		}
	}
}
