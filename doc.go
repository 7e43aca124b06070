// Package hostplatform is the boundary between a real-time host application
// and the operating environment.
//
// # Architecture Overview
//
// The module is organized into small packages, leaf first:
//
//	hostplatform/        Platform aggregate: configuration, Init, accessors
//	├── resource/        Fixed-capacity handle table (slot 0 reserved)
//	├── errors/          Structured error kinds and fatal classification
//	├── files/           Handle-based file API over raw or asset backends
//	├── clocks/          Monotonic clock and sleep
//	├── system/          Processor count, directory creation, user dir
//	├── console/         Non-blocking console line editor
//	└── lifecycle/       Quit and fatal error termination sequencing
//
// # Backends
//
// Exactly one read backend is compiled in. The default build reads the raw
// filesystem; building with -tags assets serves reads from the archive set
// with WithArchive. Writes always land on the raw filesystem.
//
// # Quick Start
//
//	p := hostplatform.New(host.Shutdown).
//	    WithLogger(logger).
//	    WithAppName("quake")
//	p.Init()
//
//	h, n := p.Files().OpenRead("id1/config.cfg")
//	if h == resource.Invalid {
//	    // not found
//	}
//	buf := make([]byte, n)
//	p.Files().Read(h, buf)
//	p.Files().Close(h)
//
//	for {
//	    if line, ok := p.PollConsole(); ok {
//	        host.Exec(line)
//	    }
//	    p.Sleep(1)
//	}
package hostplatform
