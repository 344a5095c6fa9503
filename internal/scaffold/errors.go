package scaffold

import (
	"errors"
	"fmt"
)

// ErrDirectoryExists is returned when the source directory is already present.
// Nothing has been written when this error is returned.
var ErrDirectoryExists = errors.New("source directory already exists")

// FileWriteError indicates an artifact could not be written to disk.
type FileWriteError struct {
	Path string
	Err  error
}

func (e *FileWriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *FileWriteError) Unwrap() error {
	return e.Err
}

// InstallFailureError indicates the dependency installation step failed.
// The wrapped error carries the installer's own diagnostic output.
type InstallFailureError struct {
	Err error
}

func (e *InstallFailureError) Error() string {
	return fmt.Sprintf("dependency installation failed: %v", e.Err)
}

func (e *InstallFailureError) Unwrap() error {
	return e.Err
}
