package lifecycle

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"

	perrors "github.com/wippyai/hostplatform/errors"
)

// Process exit codes.
const (
	ExitOK    = 0
	ExitFatal = 1
)

const (
	errorBanner = "\nERROR-OUT BEGIN\n\n"
	errorPrefix = "\nFATAL ERROR: "
)

// State is a lifecycle state. Transitions are one-way:
// Running -> ShuttingDown -> Terminated.
type State int32

const (
	Running State = iota
	ShuttingDown
	Terminated
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case ShuttingDown:
		return "shutting_down"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// ShutdownFunc is the host shutdown hook. It runs at most once per process.
type ShutdownFunc func()

// ExitFunc ends the process. The default is os.Exit.
type ExitFunc func(code int)

// Dialog presents a fatal error to the user and blocks until dismissed.
type Dialog interface {
	Show(title, message string) error
}

// Lifecycle sequences process termination. Both termination paths run the
// host shutdown hook, then teardown hooks, then exit.
type Lifecycle struct {
	shutdown ShutdownFunc
	exit     ExitFunc
	dialog   Dialog
	stderr   io.Writer
	logger   *zap.Logger
	teardown []func() error
	state    State
	headless bool
	mu       sync.Mutex
}

// New creates a lifecycle in the Running state.
func New(shutdown ShutdownFunc) *Lifecycle {
	return &Lifecycle{
		shutdown: shutdown,
		exit:     os.Exit,
		stderr:   os.Stderr,
		logger:   zap.NewNop(),
		state:    Running,
	}
}

// WithExit replaces the process exit function
func (l *Lifecycle) WithExit(exit ExitFunc) *Lifecycle {
	l.exit = exit
	return l
}

// WithLogger sets the platform logger
func (l *Lifecycle) WithLogger(logger *zap.Logger) *Lifecycle {
	if logger != nil {
		l.logger = logger
	}
	return l
}

// WithStderr sets where the fatal report is written
func (l *Lifecycle) WithStderr(w io.Writer) *Lifecycle {
	l.stderr = w
	return l
}

// WithDialog sets the interactive error surface
func (l *Lifecycle) WithDialog(d Dialog) *Lifecycle {
	l.dialog = d
	return l
}

// WithHeadless suppresses the error dialog when true
func (l *Lifecycle) WithHeadless(headless bool) *Lifecycle {
	l.headless = headless
	return l
}

// OnTeardown registers a hook that runs after the shutdown hook and before
// exit. Hooks run in registration order.
func (l *Lifecycle) OnTeardown(fn func() error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.teardown = append(l.teardown, fn)
}

// State returns the current lifecycle state.
func (l *Lifecycle) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Headless reports whether the error dialog is suppressed.
func (l *Lifecycle) Headless() bool {
	return l.headless
}

// FatalError shuts down and exits with status 1. It does not return when
// the exit function does not return.
//
// A fatal error raised while already shutting down (for example from the
// shutdown hook) skips the hook and exits immediately.
func (l *Lifecycle) FatalError(err error) {
	if err == nil {
		err = perrors.Fatalf("unknown fatal error")
	}
	msg := message(err)

	if !l.begin() {
		l.logger.Error("fatal error during shutdown", append(errorFields(err), zap.String("message", msg))...)
		fmt.Fprintf(l.stderr, "%s%s\n\n", errorPrefix, msg)
		l.terminate(ExitFatal)
		return
	}

	io.WriteString(l.stderr, errorBanner)

	l.runShutdown()

	l.logger.Error(msg, errorFields(err)...)

	fmt.Fprintf(l.stderr, "%s%s\n\n", errorPrefix, msg)

	if !l.headless && l.dialog != nil {
		if derr := l.dialog.Show("Fatal Error", msg); derr != nil {
			l.logger.Warn("error dialog failed", zap.Error(derr))
		}
	}

	l.terminate(ExitFatal)
}

// Fatalf formats a host-raised fatal error and runs FatalError.
func (l *Lifecycle) Fatalf(format string, args ...any) {
	l.FatalError(perrors.Fatalf(format, args...))
}

// Quit shuts down and exits with status 0. A quit requested while already
// shutting down is ignored; the termination in progress exits.
func (l *Lifecycle) Quit() {
	if !l.begin() {
		l.logger.Debug("quit ignored", zap.Stringer("state", l.State()))
		return
	}

	l.runShutdown()
	l.terminate(ExitOK)
}

func (l *Lifecycle) begin() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != Running {
		return false
	}
	l.state = ShuttingDown
	return true
}

func (l *Lifecycle) runShutdown() {
	if l.shutdown != nil {
		func() {
			defer func() {
				if r := recover(); r != nil {
					l.logger.Error("shutdown hook panicked", zap.Any("panic", r))
				}
			}()
			l.shutdown()
		}()
	}

	l.mu.Lock()
	hooks := l.teardown
	l.mu.Unlock()
	for _, fn := range hooks {
		if err := fn(); err != nil {
			l.logger.Warn("teardown failed", zap.Error(err))
		}
	}
}

func (l *Lifecycle) terminate(code int) {
	l.mu.Lock()
	l.state = Terminated
	l.mu.Unlock()

	_ = l.logger.Sync()
	l.exit(code)
}

func message(err error) string {
	var pe *perrors.Error
	if errors.As(err, &pe) {
		return pe.Message()
	}
	return err.Error()
}

func errorFields(err error) []zap.Field {
	var pe *perrors.Error
	if !errors.As(err, &pe) {
		return []zap.Field{zap.Error(err)}
	}
	fields := []zap.Field{
		zap.String("kind", string(pe.Kind)),
		zap.String("op", string(pe.Op)),
	}
	if pe.Path != "" {
		fields = append(fields, zap.String("path", pe.Path))
	}
	if pe.Cause != nil {
		fields = append(fields, zap.NamedError("cause", pe.Cause))
	}
	return fields
}
