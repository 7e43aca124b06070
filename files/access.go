package files

import (
	"errors"
	"io"

	"go.uber.org/zap"

	perrors "github.com/wippyai/hostplatform/errors"
	"github.com/wippyai/hostplatform/resource"
)

// Access is the handle-based file API. Reads go through the active
// backend; writes always target the raw filesystem.
//
// Access is not safe for concurrent use; the host owns it from one goroutine.
type Access struct {
	backend Backend
	raw     *RawBackend
	table   *resource.Table
	fatal   FatalHandler
	logger  *zap.Logger
}

// NewAccess creates a file API over backend, storing open streams in table.
// Fatal errors are handed to fatal.
func NewAccess(backend Backend, table *resource.Table, fatal FatalHandler, logger *zap.Logger) *Access {
	if logger == nil {
		logger = zap.NewNop()
	}
	if table == nil {
		table = resource.NewTable(resource.DefaultCapacity)
	}
	a := &Access{
		backend: backend,
		raw:     NewRawBackend(),
		table:   table,
		fatal:   fatal,
		logger:  logger,
	}
	table.Subscribe(resource.ObserverFunc(a.onHandleEvent))
	return a
}

// Backend returns the active read backend.
func (a *Access) Backend() Backend {
	return a.backend
}

// OpenRead opens path for reading. On success it returns the handle and the
// stream length. On failure it returns resource.Invalid and -1; the caller
// must check. Running out of handles is fatal.
func (a *Access) OpenRead(path string) (resource.Handle, int64) {
	h, ok := a.allocate(perrors.OpOpenRead)
	if !ok {
		return resource.Invalid, -1
	}

	s, err := a.backend.OpenRead(path)
	if err != nil {
		a.table.Release(h)
		a.report(err)
		return resource.Invalid, -1
	}

	length, err := s.Length()
	if err != nil {
		s.Close()
		a.table.Release(h)
		a.report(perrors.OpenReadFailed(path, err))
		return resource.Invalid, -1
	}

	a.table.Set(h, &handleStream{Stream: s, path: path})
	return h, length
}

// OpenWrite opens path for writing, creating or truncating it.
// Failure is fatal.
func (a *Access) OpenWrite(path string) resource.Handle {
	h, ok := a.allocate(perrors.OpOpenWrite)
	if !ok {
		return resource.Invalid
	}

	s, err := a.raw.OpenWrite(path)
	if err != nil {
		a.table.Release(h)
		a.report(err)
		return resource.Invalid
	}

	a.table.Set(h, &handleStream{Stream: s, path: path})
	return h
}

// Read fills p from the stream and returns the bytes transferred.
// Short reads at end of stream are not errors.
func (a *Access) Read(h resource.Handle, p []byte) int {
	s := a.stream(h, perrors.OpRead)
	if s == nil {
		return 0
	}
	n, _ := io.ReadFull(s, p)
	return n
}

// Write writes p to the stream and returns the bytes transferred.
// Streams not opened for writing transfer nothing.
func (a *Access) Write(h resource.Handle, p []byte) int {
	s := a.stream(h, perrors.OpWrite)
	if s == nil {
		return 0
	}
	w, ok := s.Stream.(io.Writer)
	if !ok {
		return 0
	}
	n, _ := w.Write(p)
	return n
}

// Seek moves the stream cursor to an absolute offset from the start.
func (a *Access) Seek(h resource.Handle, offset int64) {
	s := a.stream(h, perrors.OpSeek)
	if s == nil {
		return
	}
	if _, err := s.Seek(offset, io.SeekStart); err != nil {
		a.logger.Debug("seek failed",
			zap.Uint32("handle", uint32(h)),
			zap.Int64("offset", offset),
			zap.Error(err))
	}
}

// Length returns the total size of the stream in bytes.
func (a *Access) Length(h resource.Handle) int64 {
	s := a.stream(h, perrors.OpLength)
	if s == nil {
		return -1
	}
	n, err := s.Length()
	if err != nil {
		return -1
	}
	return n
}

// Close releases the stream and its handle slot.
func (a *Access) Close(h resource.Handle) {
	s := a.stream(h, perrors.OpClose)
	if s == nil {
		return
	}
	if err := s.Close(); err != nil {
		a.logger.Debug("close failed",
			zap.Uint32("handle", uint32(h)),
			zap.String("path", s.path),
			zap.Error(err))
	}
	a.table.Release(h)
}

// Exists reports whether path can be opened for reading. The probe does
// not consume a handle.
func (a *Access) Exists(path string) bool {
	return a.backend.Exists(path)
}

// Open returns the number of live handles.
func (a *Access) Open() int {
	return a.table.Len()
}

// CloseAll closes every open stream. Used during process teardown.
func (a *Access) CloseAll() error {
	return a.table.Close()
}

func (a *Access) allocate(op perrors.Op) (resource.Handle, bool) {
	h, err := a.table.Allocate()
	if err != nil {
		if errors.Is(err, resource.ErrExhausted) {
			err = perrors.HandlesExhausted(op, a.table.Cap())
		}
		a.report(err)
		return resource.Invalid, false
	}
	return h, true
}

func (a *Access) stream(h resource.Handle, op perrors.Op) *handleStream {
	v, ok := a.table.Get(h)
	if !ok {
		a.report(perrors.InvalidHandle(op, uint32(h)))
		return nil
	}
	return v.(*handleStream)
}

// report routes err by kind. Recoverable kinds are logged and dropped;
// fatal kinds and unclassified errors go to the fatal handler.
func (a *Access) report(err error) {
	var pe *perrors.Error
	if errors.As(err, &pe) && !pe.Kind.Fatal() {
		a.logger.Debug("open failed",
			zap.String("kind", string(pe.Kind)),
			zap.String("path", pe.Path),
			zap.NamedError("cause", pe.Cause))
		return
	}
	a.fatal.FatalError(err)
}

func (a *Access) onHandleEvent(e resource.Event) {
	path := ""
	if s, ok := e.Value.(*handleStream); ok {
		path = s.path
	}
	a.logger.Debug("file handle "+e.Type.String(),
		zap.Uint32("handle", uint32(e.Handle)),
		zap.String("path", path),
		zap.String("backend", a.backend.Name()))
}
