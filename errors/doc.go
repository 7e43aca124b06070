// Package errors provides structured error types for the host platform layer.
//
// Errors are categorized by Kind (error category) and Op (the failing platform
// operation). Each Kind is either recoverable or fatal; see Kind.Fatal.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.KindOpenWriteFailed).
//		Op(errors.OpOpenWrite).
//		Path("save/s0.sav").
//		Cause(osErr).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.HandlesExhausted(errors.OpOpenRead, 32)
//	err := errors.DirectoryCreateFailed(path, cause)
//
// Recoverable errors are surfaced to the immediate caller as sentinel values.
// Fatal errors are handed to the lifecycle fatal path and never returned.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
