// Package mmap reads revlog files through read-only memory mappings.
package mmap

import (
	"bytes"
	"errors"
)

var (
	// ErrNilFile is returned when Map is called without a file.
	ErrNilFile = errors.New("cannot map nil file")
	// ErrNoFileDescriptor is returned for files not backed by the OS.
	ErrNoFileDescriptor = errors.New("file has no descriptor")
	// ErrUnsupported is returned on platforms without mmap support.
	ErrUnsupported = errors.New("mmap is only supported in linux or darwin")
)

// Reader reads a mapped file. It implements io.ReadSeeker and io.ReaderAt.
// The mapping stays valid until Close; the file itself is not closed.
type Reader struct {
	*bytes.Reader

	data    []byte
	cleanup func() error
}

// Close releases the mapping. Bytes obtained from the reader must not be
// used afterwards.
func (r *Reader) Close() error {
	if r.cleanup == nil {
		return nil
	}

	err := r.cleanup()
	r.cleanup = nil
	r.data = nil
	r.Reader = bytes.NewReader(nil)

	return err
}

func newReader(data []byte, cleanup func() error) *Reader {
	return &Reader{Reader: bytes.NewReader(data), data: data, cleanup: cleanup}
}

// billyFileDescriptor represents the Fd interface for billy.File.
type billyFileDescriptor interface {
	Fd() (uintptr, bool)
}

// goFileDescriptor represents the Fd interface of os.File, also promoted
// by billy files that embed one.
type goFileDescriptor interface {
	Fd() uintptr
}

func fileDescriptor(f interface{}) (uintptr, error) {
	if ffd, ok := f.(billyFileDescriptor); ok {
		if v, ok := ffd.Fd(); ok {
			return v, nil
		}
	}
	if ffd, ok := f.(goFileDescriptor); ok {
		return ffd.Fd(), nil
	}

	return 0, ErrNoFileDescriptor
}
