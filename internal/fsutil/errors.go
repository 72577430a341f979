package fsutil

import (
	"errors"
	"fmt"
)

// FileSystemError reports a failed filesystem operation on a path.
type FileSystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileSystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileSystemError) Unwrap() error { return e.Err }

// Wrap returns err as a *FileSystemError, or nil when err is nil.
// An err that already is a *FileSystemError is returned unchanged.
func Wrap(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var fsErr *FileSystemError
	if errors.As(err, &fsErr) {
		return err
	}
	return &FileSystemError{Op: op, Path: path, Err: err}
}

// IsFileSystemError reports whether err or any error it wraps is a *FileSystemError.
func IsFileSystemError(err error) bool {
	var fsErr *FileSystemError
	return errors.As(err, &fsErr)
}
