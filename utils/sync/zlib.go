package sync

import (
	"bytes"
	"compress/zlib"
	"io"
	"sync"
)

var (
	zlibInitBytes = []byte{0x78, 0x9c, 0x01, 0x00, 0x00, 0xff, 0xff, 0x00, 0x00, 0x00, 0x01}
	zlibReader    = sync.Pool{
		New: func() any {
			r, _ := zlib.NewReader(bytes.NewReader(zlibInitBytes))
			return &ZLibReader{
				reader: r.(zlibReadCloser),
			}
		},
	}
)

type zlibReadCloser interface {
	io.ReadCloser
	zlib.Resetter
}

// ZLibReader is a poolable zlib reader.
type ZLibReader struct {
	reader zlibReadCloser
}

// Read reads data from the zlib reader.
func (r *ZLibReader) Read(p []byte) (int, error) {
	return r.reader.Read(p)
}

// Close closes the zlib reader.
func (r *ZLibReader) Close() error {
	return r.reader.Close()
}

// GetZlibReader returns a ZLibReader that is managed by a sync.Pool,
// reset to read the zlib stream in r. The stream header is validated
// during the reset, so a malformed header is reported here.
//
// After use, the ZLibReader should be put back into the sync.Pool
// by calling PutZlibReader, even when an error was returned.
func GetZlibReader(r io.Reader) (*ZLibReader, error) {
	z := zlibReader.Get().(*ZLibReader)
	err := z.reader.Reset(r, nil)

	return z, err
}

// PutZlibReader puts z back into its sync.Pool.
func PutZlibReader(z *ZLibReader) {
	if z == nil {
		return
	}

	_ = z.reader.Close()
	zlibReader.Put(z)
}
