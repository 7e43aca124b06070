package system

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	perrors "github.com/wippyai/hostplatform/errors"
)

// ProcessorCount returns the number of logical processors usable by the
// process. It is always at least 1.
func ProcessorCount() int {
	n := runtime.NumCPU()
	if n < 1 {
		return 1
	}
	return n
}

// MakeDirectory creates path. A path that already exists as a directory is
// success; every other failure is a directory_create_failed error.
func MakeDirectory(path string) error {
	err := os.Mkdir(path, 0o777)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrExist) {
		if fi, statErr := os.Stat(path); statErr == nil && fi.IsDir() {
			return nil
		}
	}
	return perrors.DirectoryCreateFailed(path, unwrapPathError(err))
}

// UserDataDir returns the per-user writable directory for appName,
// e.g. ~/.config/<appName> on Linux. The OS config directory is created
// when missing; the app directory itself is left to MakeDirectory.
func UserDataDir(appName string) (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", perrors.Wrap(perrors.KindNotConfigured, perrors.OpInit, err, "no user data directory")
	}
	if err := os.MkdirAll(base, 0o777); err != nil {
		return "", perrors.DirectoryCreateFailed(base, unwrapPathError(err))
	}
	return filepath.Join(base, appName), nil
}

func unwrapPathError(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
