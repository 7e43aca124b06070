//go:build !unix

package console

import "io"

type noInput struct{}

// Stdin returns a source that never has input. Non-blocking readiness
// checks on standard input are only implemented for unix.
func Stdin() Source {
	return noInput{}
}

func (noInput) Ready() bool             { return false }
func (noInput) ReadByte() (byte, error) { return 0, io.EOF }
