package system

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	perrors "github.com/wippyai/hostplatform/errors"
)

func TestProcessorCount(t *testing.T) {
	if n := ProcessorCount(); n < 1 {
		t.Fatalf("ProcessorCount() = %d, want >= 1", n)
	}
}

func TestMakeDirectory_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "id1")

	if err := MakeDirectory(path); err != nil {
		t.Fatalf("first MakeDirectory failed: %v", err)
	}
	if err := MakeDirectory(path); err != nil {
		t.Fatalf("second MakeDirectory failed: %v", err)
	}

	fi, err := os.Stat(path)
	if err != nil || !fi.IsDir() {
		t.Fatalf("expected directory at %s", path)
	}
}

func TestMakeDirectory_ExistsAsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.cfg")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := MakeDirectory(path)
	if err == nil {
		t.Fatal("expected error for path that is a file")
	}
	if !errors.Is(err, &perrors.Error{Kind: perrors.KindDirectoryCreateFailed}) {
		t.Fatalf("expected directory_create_failed, got %v", err)
	}
	if !errors.Is(err, os.ErrExist) {
		t.Fatalf("expected cause to be ErrExist, got %v", err)
	}
}

func TestMakeDirectory_MissingParent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b")

	err := MakeDirectory(path)
	var pe *perrors.Error
	if !errors.As(err, &pe) {
		t.Fatalf("expected *errors.Error, got %v", err)
	}
	if pe.Path != path {
		t.Errorf("Path = %q, want %q", pe.Path, path)
	}
	if !pe.Kind.Fatal() {
		t.Error("directory_create_failed must be fatal")
	}
}

func TestUserDataDir(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "xdg"))
	t.Setenv("HOME", filepath.Join(tmp, "home"))
	t.Setenv("AppData", filepath.Join(tmp, "appdata"))

	dir, err := UserDataDir("quake")
	if err != nil {
		t.Fatalf("UserDataDir failed: %v", err)
	}
	if filepath.Base(dir) != "quake" {
		t.Errorf("expected app name suffix, got %s", dir)
	}
}

func TestUserDataDir_CreatesMissingBase(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only drives the config dir on linux")
	}
	base := filepath.Join(t.TempDir(), "fresh", ".config")
	t.Setenv("XDG_CONFIG_HOME", base)

	dir, err := UserDataDir("quake")
	if err != nil {
		t.Fatalf("UserDataDir failed: %v", err)
	}
	if dir != filepath.Join(base, "quake") {
		t.Fatalf("dir = %q", dir)
	}
	if fi, err := os.Stat(base); err != nil || !fi.IsDir() {
		t.Fatalf("config base not created: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("app dir should be left to MakeDirectory, stat err = %v", err)
	}
	if err := MakeDirectory(dir); err != nil {
		t.Fatalf("MakeDirectory under created base failed: %v", err)
	}
}

func TestUserDataDir_BaseIsFile(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only drives the config dir on linux")
	}
	file := filepath.Join(t.TempDir(), "config")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("XDG_CONFIG_HOME", file)

	_, err := UserDataDir("quake")
	if !errors.Is(err, &perrors.Error{Kind: perrors.KindDirectoryCreateFailed}) {
		t.Fatalf("expected directory_create_failed, got %v", err)
	}
}
