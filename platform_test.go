package hostplatform

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/hostplatform/console"
	"github.com/wippyai/hostplatform/lifecycle"
	"github.com/wippyai/hostplatform/resource"
)

type testHost struct {
	p         *Platform
	stdin     *console.BytesSource
	stderr    *bytes.Buffer
	logs      *observer.ObservedLogs
	exits     []int
	shutdowns int
}

func newTestHost(t *testing.T) *testHost {
	t.Helper()
	h := &testHost{
		stdin:  console.NewBytesSource(nil),
		stderr: &bytes.Buffer{},
	}
	core, logs := observer.New(zapcore.DebugLevel)
	h.logs = logs
	h.p = New(func() { h.shutdowns++ }).
		WithLogger(zap.New(core)).
		WithUserDir(filepath.Join(t.TempDir(), "user")).
		WithHeadless(true).
		WithExit(func(code int) { h.exits = append(h.exits, code) }).
		WithStdin(h.stdin).
		WithStderr(h.stderr).
		WithArchive(testArchive())
	return h
}

func (h *testHost) init(t *testing.T) {
	t.Helper()
	if err := h.p.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
}

func (h *testHost) assertExit(t *testing.T, code int) {
	t.Helper()
	if len(h.exits) != 1 || h.exits[0] != code {
		t.Fatalf("exits = %v, want [%d]", h.exits, code)
	}
	if h.shutdowns != 1 {
		t.Fatalf("shutdown called %d times, want 1", h.shutdowns)
	}
}

func TestPlatform_Init(t *testing.T) {
	h := newTestHost(t)
	h.init(t)

	fi, err := os.Stat(h.p.UserDir())
	if err != nil || !fi.IsDir() {
		t.Fatalf("user dir not created: %v", err)
	}
	if h.p.ProcessorCount() < 1 {
		t.Fatalf("ProcessorCount = %d", h.p.ProcessorCount())
	}
	if h.p.Files() == nil || h.p.Console() == nil {
		t.Fatal("Init did not build file and console layers")
	}
	if !h.p.Headless() {
		t.Fatal("headless override ignored")
	}
	if h.logs.FilterMessage("userdir").Len() != 1 {
		t.Error("user dir not logged")
	}
	if h.logs.FilterField(zap.Int("cpus", h.p.ProcessorCount())).Len() != 1 {
		t.Error("cpu count not logged")
	}

	if err := h.p.Init(); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	if len(h.exits) != 0 {
		t.Fatalf("unexpected exits %v", h.exits)
	}
}

func TestPlatform_InitExistingUserDir(t *testing.T) {
	h := newTestHost(t)
	dir := t.TempDir()
	h.p.WithUserDir(dir)
	h.init(t)
	if h.p.UserDir() != dir {
		t.Fatalf("UserDir = %q", h.p.UserDir())
	}
}

func TestPlatform_InitFreshConfigHome(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only drives the config dir on linux")
	}
	base := filepath.Join(t.TempDir(), "fresh", ".config")
	t.Setenv("XDG_CONFIG_HOME", base)

	h := newTestHost(t)
	h.p.WithUserDir("").WithAppName("quake")
	h.init(t)

	if h.p.UserDir() != filepath.Join(base, "quake") {
		t.Fatalf("UserDir = %q", h.p.UserDir())
	}
	if fi, err := os.Stat(h.p.UserDir()); err != nil || !fi.IsDir() {
		t.Fatalf("user dir not created: %v", err)
	}
	if len(h.exits) != 0 {
		t.Fatalf("unexpected exits %v: %s", h.exits, h.stderr.String())
	}
}

func TestPlatform_InitUserDirIsFile(t *testing.T) {
	h := newTestHost(t)
	path := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	h.p.WithUserDir(path)

	if err := h.p.Init(); err == nil {
		t.Fatal("Init should fail when the user dir is a file")
	}
	h.assertExit(t, lifecycle.ExitFatal)
}

func TestPlatform_UseBeforeInitIsFatal(t *testing.T) {
	h := newTestHost(t)

	if h.p.Files() != nil {
		t.Fatal("Files before Init should be nil")
	}
	h.assertExit(t, lifecycle.ExitFatal)
}

func TestPlatform_MakeDirectory(t *testing.T) {
	h := newTestHost(t)
	dir := filepath.Join(t.TempDir(), "id1")

	if !h.p.MakeDirectory(dir) || !h.p.MakeDirectory(dir) {
		t.Fatal("MakeDirectory should be idempotent")
	}
	if len(h.exits) != 0 {
		t.Fatalf("unexpected exits %v", h.exits)
	}

	file := filepath.Join(dir, "config.cfg")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if h.p.MakeDirectory(file) {
		t.Fatal("MakeDirectory over a file should fail")
	}
	h.assertExit(t, lifecycle.ExitFatal)
}

func TestPlatform_MonotonicTime(t *testing.T) {
	h := newTestHost(t)

	t0 := h.p.MonotonicTime()
	h.p.Sleep(20)
	t1 := h.p.MonotonicTime()

	if t1 < t0 {
		t.Fatalf("time went backwards: %f -> %f", t0, t1)
	}
	if t1-t0 < 0.019 {
		t.Fatalf("slept %f seconds, want at least 0.02", t1-t0)
	}
}

func TestPlatform_PollConsole(t *testing.T) {
	h := newTestHost(t)
	h.init(t)

	if _, ok := h.p.PollConsole(); ok {
		t.Fatal("line without input")
	}

	h.stdin.Feed([]byte{'a', 'b', 0x08, 'c', '\n'})
	line, ok := h.p.PollConsole()
	if !ok || line != "ac" {
		t.Fatalf("PollConsole = (%q, %v), want (\"ac\", true)", line, ok)
	}
}

func TestPlatform_QuitClosesHandles(t *testing.T) {
	h := newTestHost(t)
	h.init(t)

	f := h.p.Files()
	w := f.OpenWrite(filepath.Join(h.p.UserDir(), "s0.sav"))
	if w == resource.Invalid {
		t.Fatal("OpenWrite failed")
	}
	if f.Open() != 1 {
		t.Fatalf("Open = %d", f.Open())
	}

	h.p.Quit()

	h.assertExit(t, lifecycle.ExitOK)
	if f.Open() != 0 {
		t.Fatalf("%d handles still open after quit", f.Open())
	}
	if h.p.Lifecycle().State() != lifecycle.Terminated {
		t.Fatalf("state = %s", h.p.Lifecycle().State())
	}
}

func TestPlatform_HandlesExhaustedIsFatal(t *testing.T) {
	h := newTestHost(t)
	h.init(t)

	f := h.p.Files()
	for i := 1; i < resource.DefaultCapacity; i++ {
		path := filepath.Join(h.p.UserDir(), fmt.Sprintf("f%02d", i))
		if f.OpenWrite(path) == resource.Invalid {
			t.Fatalf("open %d failed", i)
		}
	}
	if len(h.exits) != 0 {
		t.Fatalf("exit before capacity reached: %v", h.exits)
	}

	if f.OpenWrite(filepath.Join(h.p.UserDir(), "overflow")) != resource.Invalid {
		t.Fatal("open past capacity returned a handle")
	}
	h.assertExit(t, lifecycle.ExitFatal)
	if !bytes.Contains(h.stderr.Bytes(), []byte("out of handles")) {
		t.Errorf("stderr = %q", h.stderr.String())
	}
}

func TestPlatform_Fatalf(t *testing.T) {
	h := newTestHost(t)
	h.init(t)

	h.p.Fatalf("Host_Error: %s", "recursively entered")

	h.assertExit(t, lifecycle.ExitFatal)
	if !bytes.Contains(h.stderr.Bytes(), []byte("Host_Error: recursively entered")) {
		t.Errorf("stderr = %q", h.stderr.String())
	}
}
