//go:build !assets

package hostplatform

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/wippyai/hostplatform/files"
	"github.com/wippyai/hostplatform/resource"
)

// testArchive is the archive every shared platform test runs with. The raw
// build needs none.
func testArchive() files.Archive {
	return nil
}

func TestRawBuild_RoundTrip(t *testing.T) {
	h := newTestHost(t)
	h.init(t)

	if AssetMode {
		t.Fatal("raw build reports asset mode")
	}
	f := h.p.Files()
	if f.Backend().Name() != "raw" {
		t.Fatalf("backend = %s", f.Backend().Name())
	}

	path := filepath.Join(h.p.UserDir(), "config.cfg")
	data := []byte("name player\n")

	w := f.OpenWrite(path)
	if n := f.Write(w, data); n != len(data) {
		t.Fatalf("wrote %d", n)
	}
	f.Close(w)

	r, length := f.OpenRead(path)
	if r == resource.Invalid || length != int64(len(data)) {
		t.Fatalf("OpenRead = (%d, %d)", r, length)
	}
	buf := make([]byte, length)
	if n := f.Read(r, buf); n != len(data) || string(buf) != string(data) {
		t.Fatalf("read %q", buf[:n])
	}
	f.Close(r)

	if !f.Exists(path) || f.Exists(path+".bak") {
		t.Fatal("Exists mismatch")
	}
}

func TestRawBuild_IgnoresArchive(t *testing.T) {
	h := newTestHost(t)
	h.p.WithArchive(files.NewFSArchive(fstest.MapFS{
		"id1/pak0.pak": {Data: []byte("PACK")},
	}))
	h.init(t)

	if h.logs.FilterMessage("asset archive ignored by raw filesystem build").Len() != 1 {
		t.Error("ignored archive not logged")
	}
	if r, _ := h.p.Files().OpenRead("./id1/pak0.pak"); r != resource.Invalid {
		t.Fatal("raw build read from the archive")
	}
}
