package hostplatform

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/wippyai/hostplatform/clocks"
	"github.com/wippyai/hostplatform/console"
	perrors "github.com/wippyai/hostplatform/errors"
	"github.com/wippyai/hostplatform/files"
	"github.com/wippyai/hostplatform/lifecycle"
	"github.com/wippyai/hostplatform/resource"
	"github.com/wippyai/hostplatform/system"
)

// DefaultAppName names the user data directory when none is configured.
const DefaultAppName = "hostplatform"

// Platform is the host's view of the operating environment. Configure it
// with the builder methods, call Init once, then use the accessors.
//
// Platform is not safe for concurrent use.
type Platform struct {
	lc      *lifecycle.Lifecycle
	logger  *zap.Logger
	clock   *clocks.Monotonic
	archive files.Archive
	stdin   console.Source
	dialog  lifecycle.Dialog

	appName  string
	userDir  string
	headless *bool

	table   *resource.Table
	files   *files.Access
	console *console.Console
	cpus    int
	ready   bool
}

// New creates a platform that calls shutdown exactly once when the process
// ends through Quit or FatalError.
func New(shutdown lifecycle.ShutdownFunc) *Platform {
	return &Platform{
		lc:      lifecycle.New(shutdown),
		logger:  zap.NewNop(),
		clock:   clocks.NewMonotonic(),
		appName: DefaultAppName,
	}
}

// WithLogger sets the platform logger
func (p *Platform) WithLogger(logger *zap.Logger) *Platform {
	if logger != nil {
		p.logger = logger
		p.lc.WithLogger(logger)
	}
	return p
}

// WithUserDir sets the writable user data directory
func (p *Platform) WithUserDir(dir string) *Platform {
	p.userDir = dir
	return p
}

// WithAppName sets the directory name used under the OS config dir
func (p *Platform) WithAppName(name string) *Platform {
	if name != "" {
		p.appName = name
	}
	return p
}

// WithHeadless forces headless mode on or off instead of detecting it
func (p *Platform) WithHeadless(headless bool) *Platform {
	p.headless = &headless
	return p
}

// WithArchive sets the packaged asset archive. It is required in asset
// builds and ignored otherwise.
func (p *Platform) WithArchive(archive files.Archive) *Platform {
	p.archive = archive
	return p
}

// WithExit replaces the process exit function
func (p *Platform) WithExit(exit lifecycle.ExitFunc) *Platform {
	p.lc.WithExit(exit)
	return p
}

// WithStdin sets the console input source
func (p *Platform) WithStdin(src console.Source) *Platform {
	p.stdin = src
	return p
}

// WithStderr sets where fatal reports are written
func (p *Platform) WithStderr(w io.Writer) *Platform {
	p.lc.WithStderr(w)
	return p
}

// WithDialog sets the interactive fatal error surface
func (p *Platform) WithDialog(d lifecycle.Dialog) *Platform {
	p.dialog = d
	return p
}

// Init resolves and creates the user data directory, caches the processor
// count and builds the file and console layers. Failures are fatal; the
// returned error is only seen when the exit function returns.
// Calling Init again is a no-op.
func (p *Platform) Init() error {
	if p.ready {
		return nil
	}

	var headless bool
	if p.headless != nil {
		headless = *p.headless
	} else {
		headless = lifecycle.DetectHeadless()
	}
	p.lc.WithHeadless(headless)
	if p.dialog == nil && !headless {
		p.dialog = lifecycle.NewTerminalDialog(nil, nil)
	}
	p.lc.WithDialog(p.dialog)

	if p.userDir == "" {
		dir, err := system.UserDataDir(p.appName)
		if err != nil {
			p.lc.FatalError(err)
			return err
		}
		p.userDir = dir
	}
	p.logger.Info("userdir", zap.String("path", p.userDir))
	if err := system.MakeDirectory(p.userDir); err != nil {
		p.lc.FatalError(err)
		return err
	}

	p.cpus = system.ProcessorCount()
	p.logger.Info(fmt.Sprintf("Detected %d CPUs.", p.cpus), zap.Int("cpus", p.cpus))

	backend, err := p.selectBackend()
	if err != nil {
		p.lc.FatalError(err)
		return err
	}
	p.logger.Info("file backend", zap.String("backend", backend.Name()))

	p.table = resource.NewTable(resource.DefaultCapacity)
	p.files = files.NewAccess(backend, p.table, p.lc, p.logger.Named("files"))

	stdin := p.stdin
	if stdin == nil {
		stdin = console.Stdin()
	}
	p.console = console.New(stdin, p.logger.Named("console"))

	p.lc.OnTeardown(p.files.CloseAll)
	if c, ok := p.archive.(io.Closer); ok {
		p.lc.OnTeardown(c.Close)
	}

	p.ready = true
	return nil
}

// Files returns the handle-based file API, or nil before Init.
func (p *Platform) Files() *files.Access {
	if !p.require("files") {
		return nil
	}
	return p.files
}

// Console returns the console line editor, or nil before Init.
func (p *Platform) Console() *console.Console {
	if !p.require("console") {
		return nil
	}
	return p.console
}

// PollConsole returns a completed console line if one is ready.
func (p *Platform) PollConsole() (string, bool) {
	if c := p.Console(); c != nil {
		return c.Poll()
	}
	return "", false
}

// Lifecycle returns the termination state machine.
func (p *Platform) Lifecycle() *lifecycle.Lifecycle {
	return p.lc
}

// Logger returns the platform logger.
func (p *Platform) Logger() *zap.Logger {
	return p.logger
}

// ProcessorCount returns the logical processor count cached by Init.
func (p *Platform) ProcessorCount() int {
	if p.cpus == 0 {
		return system.ProcessorCount()
	}
	return p.cpus
}

// MonotonicTime returns seconds elapsed since the platform was created.
func (p *Platform) MonotonicTime() float64 {
	return p.clock.Seconds()
}

// MakeDirectory creates path. An existing directory is success; any other
// failure is fatal and reported false.
func (p *Platform) MakeDirectory(path string) bool {
	if err := system.MakeDirectory(path); err != nil {
		p.lc.FatalError(err)
		return false
	}
	return true
}

// Sleep blocks for at least msecs milliseconds.
func (p *Platform) Sleep(msecs uint32) {
	clocks.Sleep(msecs)
}

// UserDir returns the writable user data directory resolved by Init.
func (p *Platform) UserDir() string {
	return p.userDir
}

// Headless reports whether fatal errors skip the dialog.
func (p *Platform) Headless() bool {
	return p.lc.Headless()
}

// Quit shuts down and exits with status 0.
func (p *Platform) Quit() {
	p.lc.Quit()
}

// FatalError shuts down and exits with status 1.
func (p *Platform) FatalError(err error) {
	p.lc.FatalError(err)
}

// Fatalf formats a fatal error and runs FatalError.
func (p *Platform) Fatalf(format string, args ...any) {
	p.lc.Fatalf(format, args...)
}

func (p *Platform) require(what string) bool {
	if p.ready {
		return true
	}
	p.lc.FatalError(perrors.New(perrors.KindNotConfigured).
		Op(perrors.OpInit).
		Detail("%s used before Init", what).
		Build())
	return false
}
