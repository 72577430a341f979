package fsutil

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog/log"
)

// WriteFileAtomic replaces path with the bytes produced by write.
// The content goes to a pending temp file next to path, which is fsynced and
// renamed over path only when write succeeds, so readers never observe a
// partially written file.
func WriteFileAtomic(path string, write func(io.Writer) error) error {
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return Wrap("create", path, err)
	}
	defer func() {
		if err := pending.Cleanup(); err != nil {
			log.Debug().Err(err).Str("path", path).Msg("cleanup pending file")
		}
	}()

	if err := write(pending); err != nil {
		return Wrap("write", path, fmt.Errorf("writing content: %w", err))
	}

	if err := pending.CloseAtomicallyReplace(); err != nil {
		return Wrap("replace", path, err)
	}
	return nil
}

// RequireDir returns a *FileSystemError unless path is an existing, readable directory.
func RequireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return Wrap("stat", path, err)
	}
	if !info.IsDir() {
		return &FileSystemError{Op: "stat", Path: path, Err: errors.New("not a directory")}
	}
	f, err := os.Open(path) //nolint:gosec // caller-controlled source root
	if err != nil {
		return Wrap("open", path, err)
	}
	_ = f.Close()
	return nil
}
