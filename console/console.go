package console

import (
	"go.uber.org/zap"
)

// Capacity is the line buffer size. A line holds at most Capacity-1 bytes.
const Capacity = 256

const (
	backspace = 0x08
	del       = 0x7f
)

// Source is a byte source that can be checked for readiness without blocking.
type Source interface {
	// Ready reports whether ReadByte would return without blocking.
	Ready() bool
	ReadByte() (byte, error)
}

// Console is a non-blocking line editor. Partial input persists across
// polls until a line terminator completes it.
//
// Console is not safe for concurrent use.
type Console struct {
	src    Source
	logger *zap.Logger
	buf    [Capacity]byte
	n      int
}

// New creates a console reading from src.
func New(src Source, logger *zap.Logger) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Console{
		src:    src,
		logger: logger,
	}
}

// Poll consumes whatever input is available and returns a completed line,
// if one was terminated. It never blocks.
func (c *Console) Poll() (string, bool) {
	for c.src.Ready() {
		b, err := c.src.ReadByte()
		if err != nil {
			return "", false
		}

		switch b {
		case '\n', '\r':
			line := string(c.buf[:c.n])
			c.reset()
			return line, true
		case backspace, del:
			if c.n > 0 {
				c.n--
				c.buf[c.n] = 0
			}
			continue
		}

		c.buf[c.n] = b
		c.n++
		if c.n < Capacity {
			c.buf[c.n] = 0
			continue
		}

		c.reset()
		c.logger.Warn("console input too long", zap.Int("capacity", Capacity))
		return "", false
	}
	return "", false
}

// Pending returns the partial line accumulated so far.
func (c *Console) Pending() string {
	return string(c.buf[:c.n])
}

func (c *Console) reset() {
	c.n = 0
	c.buf[0] = 0
}
