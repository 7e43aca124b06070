package files

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
)

// Archive is a read-only bundle of assets addressed by slash-separated
// relative names (no leading "./" or "/").
type Archive interface {
	Open(name string) (Stream, error)
}

// FSArchive serves assets from any fs.FS: embed.FS, os.DirFS, a zip reader,
// or fstest.MapFS in tests.
type FSArchive struct {
	fsys fs.FS
}

// NewFSArchive wraps fsys as an asset archive.
func NewFSArchive(fsys fs.FS) *FSArchive {
	return &FSArchive{fsys: fsys}
}

// Open opens a streaming cursor positioned at the start of the asset.
func (a *FSArchive) Open(name string) (Stream, error) {
	f, err := a.fsys.Open(name)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if fi.IsDir() {
		f.Close()
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	return &assetStream{
		fsys: a.fsys,
		name: name,
		file: f,
		size: fi.Size(),
	}, nil
}

// ZipArchive is an FSArchive backed by a zip file on disk.
type ZipArchive struct {
	*FSArchive
	rc *zip.ReadCloser
}

// OpenZipArchive opens the zip file at path as an asset archive.
func OpenZipArchive(path string) (*ZipArchive, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open asset archive %s: %w", path, err)
	}
	return &ZipArchive{
		FSArchive: NewFSArchive(&rc.Reader),
		rc:        rc,
	}, nil
}

// Close releases the underlying zip file.
func (a *ZipArchive) Close() error {
	return a.rc.Close()
}

// assetStream is a streaming cursor into an archive. Compressed entries
// cannot seek natively, so backward seeks reopen the entry and skip forward.
type assetStream struct {
	fsys fs.FS
	file fs.File
	name string
	size int64
	pos  int64
}

func (s *assetStream) Read(p []byte) (int, error) {
	n, err := s.file.Read(p)
	s.pos += int64(n)
	return n, err
}

func (s *assetStream) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = s.pos + offset
	case io.SeekEnd:
		abs = s.size + offset
	default:
		return s.pos, errors.New("asset seek: invalid whence")
	}
	if abs < 0 {
		return s.pos, errors.New("asset seek: negative position")
	}

	if seeker, ok := s.file.(io.Seeker); ok {
		pos, err := seeker.Seek(abs, io.SeekStart)
		if err == nil {
			s.pos = pos
		}
		return pos, err
	}

	if abs < s.pos {
		f, err := s.fsys.Open(s.name)
		if err != nil {
			return s.pos, err
		}
		s.file.Close()
		s.file = f
		s.pos = 0
	}
	if abs > s.pos {
		n, err := io.CopyN(io.Discard, s.file, abs-s.pos)
		s.pos += n
		if err != nil && !errors.Is(err, io.EOF) {
			return s.pos, err
		}
	}
	return s.pos, nil
}

func (s *assetStream) Close() error {
	return s.file.Close()
}

func (s *assetStream) Length() (int64, error) {
	return s.size, nil
}
