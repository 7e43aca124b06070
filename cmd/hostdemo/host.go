package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wippyai/hostplatform"
	"github.com/wippyai/hostplatform/resource"
)

// host is the demo application driven by the platform main loop.
type host struct {
	p      *hostplatform.Platform
	out    io.Writer
	frames int
}

func (h *host) shutdown() {
	fmt.Fprintf(h.out, "shutdown after %d frames\n", h.frames)
}

func (h *host) exec(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	args := fields[1:]

	switch fields[0] {
	case "quit", "exit":
		h.p.Quit()
	case "error":
		h.p.Fatalf("%s", strings.Join(args, " "))
	case "write":
		if len(args) < 1 {
			h.usage("write <path> <text>")
			return
		}
		h.write(args[0], strings.Join(args[1:], " "))
	case "read":
		if len(args) != 1 {
			h.usage("read <path>")
			return
		}
		h.read(args[0])
	case "exists":
		if len(args) != 1 {
			h.usage("exists <path>")
			return
		}
		fmt.Fprintf(h.out, "%s: %v\n", args[0], h.p.Files().Exists(args[0]))
	case "mkdir":
		if len(args) != 1 {
			h.usage("mkdir <path>")
			return
		}
		if h.p.MakeDirectory(args[0]) {
			fmt.Fprintf(h.out, "created %s\n", args[0])
		}
	case "time":
		fmt.Fprintf(h.out, "%.3f\n", h.p.MonotonicTime())
	case "cpus":
		fmt.Fprintf(h.out, "%d\n", h.p.ProcessorCount())
	case "sleep":
		ms, err := strconv.ParseUint(strings.Join(args, ""), 10, 32)
		if err != nil {
			h.usage("sleep <ms>")
			return
		}
		h.p.Sleep(uint32(ms))
	case "handles":
		fmt.Fprintf(h.out, "%d open\n", h.p.Files().Open())
	default:
		fmt.Fprintf(h.out, "unknown command %q\n", fields[0])
	}
}

func (h *host) usage(s string) {
	fmt.Fprintf(h.out, "usage: %s\n", s)
}

func (h *host) write(path, text string) {
	f := h.p.Files()
	w := f.OpenWrite(path)
	if w == resource.Invalid {
		return
	}
	defer f.Close(w)

	n := f.Write(w, []byte(text+"\n"))
	fmt.Fprintf(h.out, "wrote %d bytes to %s\n", n, path)
}

func (h *host) read(path string) {
	f := h.p.Files()
	r, length := f.OpenRead(path)
	if r == resource.Invalid {
		fmt.Fprintf(h.out, "%s: not found\n", path)
		return
	}
	defer f.Close(r)

	buf := make([]byte, length)
	n := f.Read(r, buf)
	h.out.Write(buf[:n])
}
