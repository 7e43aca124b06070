package errors

import (
	"fmt"
	"strings"
)

// Kind categorizes the error
type Kind string

const (
	KindHandlesExhausted      Kind = "handles_exhausted"
	KindOpenReadFailed        Kind = "open_read_failed"
	KindOpenWriteFailed       Kind = "open_write_failed"
	KindDirectoryCreateFailed Kind = "directory_create_failed"
	KindAssetLookupFailed     Kind = "asset_lookup_failed"
	KindInvalidHandle         Kind = "invalid_handle"
	KindNotConfigured         Kind = "not_configured"
	KindFatal                 Kind = "fatal" // host-raised, preformatted
)

// Fatal reports whether errors of this kind terminate the process.
func (k Kind) Fatal() bool {
	switch k {
	case KindOpenReadFailed, KindAssetLookupFailed:
		return false
	default:
		return true
	}
}

// Op names the platform operation that failed
type Op string

const (
	OpOpenRead  Op = "open_read"
	OpOpenWrite Op = "open_write"
	OpRead      Op = "read"
	OpWrite     Op = "write"
	OpSeek      Op = "seek"
	OpLength    Op = "length"
	OpClose     Op = "close"
	OpMkdir     Op = "mkdir"
	OpInit      Op = "init"
	OpHost      Op = "host"
)

// Error is the structured error type used throughout the platform layer
type Error struct {
	Cause  error
	Kind   Kind
	Op     Op
	Path   string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Op != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Op))
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Message returns the preformatted human-readable text without the kind prefix.
// Used for the error dialog and stderr report.
func (e *Error) Message() string {
	msg := e.Detail
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Path != "" && e.Kind != KindFatal {
		msg = fmt.Sprintf("%s %s", msg, e.Path)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind && (t.Op == "" || e.Op == t.Op)
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(kind Kind) *Builder {
	return &Builder{
		err: Error{
			Kind: kind,
		},
	}
}

// Op sets the failing operation
func (b *Builder) Op(op Op) *Builder {
	b.err.Op = op
	return b
}

// Path sets the path involved
func (b *Builder) Path(path string) *Builder {
	b.err.Path = path
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for the platform taxonomy

// HandlesExhausted creates an out-of-handles error
func HandlesExhausted(op Op, capacity int) *Error {
	return &Error{
		Kind:   KindHandlesExhausted,
		Op:     op,
		Detail: fmt.Sprintf("out of handles (capacity %d)", capacity),
	}
}

// OpenReadFailed creates a recoverable open-for-read error
func OpenReadFailed(path string, cause error) *Error {
	return &Error{
		Kind:   KindOpenReadFailed,
		Op:     OpOpenRead,
		Path:   path,
		Detail: "error opening",
		Cause:  cause,
	}
}

// OpenWriteFailed creates a fatal open-for-write error
func OpenWriteFailed(path string, cause error) *Error {
	return &Error{
		Kind:   KindOpenWriteFailed,
		Op:     OpOpenWrite,
		Path:   path,
		Detail: "error opening",
		Cause:  cause,
	}
}

// DirectoryCreateFailed creates a fatal mkdir error
func DirectoryCreateFailed(path string, cause error) *Error {
	return &Error{
		Kind:   KindDirectoryCreateFailed,
		Op:     OpMkdir,
		Path:   path,
		Detail: "unable to create directory",
		Cause:  cause,
	}
}

// AssetLookupFailed creates a recoverable archive miss
func AssetLookupFailed(path string, cause error) *Error {
	return &Error{
		Kind:   KindAssetLookupFailed,
		Op:     OpOpenRead,
		Path:   path,
		Detail: "asset not found",
		Cause:  cause,
	}
}

// InvalidHandle creates an error for an operation on an empty slot
func InvalidHandle(op Op, handle uint32) *Error {
	return &Error{
		Kind:   KindInvalidHandle,
		Op:     op,
		Detail: fmt.Sprintf("handle %d is not open", handle),
	}
}

// NotConfigured creates an error for a missing required collaborator
func NotConfigured(op Op, what string) *Error {
	return &Error{
		Kind:   KindNotConfigured,
		Op:     op,
		Detail: fmt.Sprintf("%s not configured", what),
	}
}

// Fatalf creates a host-raised fatal error from a format string
func Fatalf(format string, args ...any) *Error {
	return &Error{
		Kind:   KindFatal,
		Op:     OpHost,
		Detail: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with platform context
func Wrap(kind Kind, op Op, cause error, detail string) *Error {
	return &Error{
		Kind:   kind,
		Op:     op,
		Detail: detail,
		Cause:  cause,
	}
}
