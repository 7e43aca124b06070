package files

import (
	"os"

	perrors "github.com/wippyai/hostplatform/errors"
)

// RawBackend reads and writes the real filesystem.
type RawBackend struct{}

// NewRawBackend creates a raw filesystem backend.
func NewRawBackend() *RawBackend {
	return &RawBackend{}
}

func (b *RawBackend) Name() string {
	return "raw"
}

// OpenRead opens path for binary reading.
func (b *RawBackend) OpenRead(path string) (Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, perrors.OpenReadFailed(path, err)
	}
	return &fileStream{File: f}, nil
}

// OpenWrite opens path for binary writing, creating or truncating it.
func (b *RawBackend) OpenWrite(path string) (Stream, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o666)
	if err != nil {
		return nil, perrors.OpenWriteFailed(path, err)
	}
	return &fileStream{File: f}, nil
}

// Exists probes path with an open-for-read that is closed immediately.
func (b *RawBackend) Exists(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// fileStream is an *os.File with a size query. Write is promoted from the
// embedded file, so write-opened streams satisfy io.Writer.
type fileStream struct {
	*os.File
}

func (s *fileStream) Length() (int64, error) {
	fi, err := s.File.Stat()
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}
