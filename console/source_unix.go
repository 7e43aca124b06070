//go:build unix

package console

import (
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// FileSource reads a file descriptor one byte at a time after a
// zero-timeout poll(2) readiness check.
type FileSource struct {
	fd int
}

// NewFileSource creates a source over f, typically os.Stdin.
func NewFileSource(f *os.File) *FileSource {
	return &FileSource{fd: int(f.Fd())}
}

// Stdin returns a source over standard input.
func Stdin() Source {
	return NewFileSource(os.Stdin)
}

func (s *FileSource) Ready() bool {
	fds := []unix.PollFd{{Fd: int32(s.fd), Events: unix.POLLIN}}
	for {
		n, err := unix.Poll(fds, 0)
		if err == unix.EINTR {
			continue
		}
		if err != nil || n == 0 {
			return false
		}
		return fds[0].Revents&(unix.POLLIN|unix.POLLHUP) != 0
	}
}

func (s *FileSource) ReadByte() (byte, error) {
	var b [1]byte
	n, err := unix.Read(s.fd, b[:])
	if n == 1 {
		return b[0], nil
	}
	if err == nil {
		err = io.EOF
	}
	return 0, err
}
