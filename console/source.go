package console

import "io"

// BytesSource is an in-memory Source. All queued bytes are ready at once.
type BytesSource struct {
	data []byte
}

func NewBytesSource(data []byte) *BytesSource {
	return &BytesSource{data: data}
}

// Feed queues more input.
func (s *BytesSource) Feed(data []byte) {
	s.data = append(s.data, data...)
}

func (s *BytesSource) Ready() bool {
	return len(s.data) > 0
}

func (s *BytesSource) ReadByte() (byte, error) {
	if len(s.data) == 0 {
		return 0, io.EOF
	}
	b := s.data[0]
	s.data = s.data[1:]
	return b, nil
}
