package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Local reads files below a root directory of the local file system.
type Local struct {
	root    string
	maxSize int64
}

// NewLocal returns a Local source confined to root, or to the working directory
// when root is empty. Relative locations are resolved against root; absolute ones
// must lie inside it. maxSize <= 0 selects DefaultMaxObjectSize.
func NewLocal(root string, maxSize int64) *Local {
	if maxSize <= 0 {
		maxSize = DefaultMaxObjectSize
	}
	if root == "" {
		root = "."
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return &Local{root: filepath.Clean(root), maxSize: maxSize}
}

// Get reads the file at location. Directories are reported as ErrNotFound.
func (l *Local) Get(ctx context.Context, location string) (*Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := strings.TrimPrefix(location, "file://")
	if path == "" {
		return nil, ErrInvalidLocation
	}
	path, err := l.resolve(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, location)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, wrapFSError(err, location)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotFound, location)
	}
	if info.Size() > l.maxSize {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrTooLarge, location, info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapFSError(err, location)
	}

	name := filepath.Base(path)
	return &Object{
		Location:    location,
		Name:        name,
		ContentType: ContentTypeByName(name),
		Data:        data,
	}, nil
}

// resolve joins path onto the root and rejects results that leave it.
// The check is lexical; symlinks inside the root are followed.
func (l *Local) resolve(path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(l.root, path)
	}
	path = filepath.Clean(path)

	rel, err := filepath.Rel(l.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: outside %s", ErrAccessDenied, l.root)
	}
	return path, nil
}

func wrapFSError(err error, location string) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrNotFound, location)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s", ErrAccessDenied, location)
	default:
		return fmt.Errorf("%w: %v", ErrReadFailed, err)
	}
}

var _ Source = (*Local)(nil)
