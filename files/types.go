package files

import (
	"io"
)

// Stream is an open byte stream owned by exactly one handle slot.
type Stream interface {
	io.Reader
	io.Seeker
	io.Closer
	// Length returns the total size of the stream in bytes.
	Length() (int64, error)
}

// Backend is the read-side storage strategy. Exactly one backend is active
// for an Access; writes always go to the raw filesystem.
type Backend interface {
	// Name identifies the backend in logs.
	Name() string
	// OpenRead opens path for reading. Failures are recoverable and
	// returned as *errors.Error of kind open_read_failed or asset_lookup_failed.
	OpenRead(path string) (Stream, error)
	// Exists reports whether path can be opened for reading.
	Exists(path string) bool
}

// FatalHandler receives fatal errors. FatalError does not return in
// production; it runs the shutdown sequence and exits the process.
type FatalHandler interface {
	FatalError(err error)
}

// FatalFunc adapts a function to the FatalHandler interface.
type FatalFunc func(error)

func (f FatalFunc) FatalError(err error) { f(err) }

// handleStream wraps a stream so the handle table can drop it on teardown.
type handleStream struct {
	Stream
	path string
}

func (s *handleStream) Drop() {
	s.Stream.Close()
}
