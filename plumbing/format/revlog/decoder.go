package revlog

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/go-hg/go-hg/plumbing"
	"github.com/go-hg/go-hg/utils/trace"
)

// Decoder reads and decodes revlog index files from a seekable source.
//
// The decoder moves the position of the source freely and assumes nobody
// else uses it for the duration of Decode.
type Decoder struct {
	r io.ReadSeeker

	rl     *Revlog
	length int64
	buf    []byte
	m      sync.Mutex
}

// NewDecoder builds a new revlog decoder, that reads from r. r must be
// positioned at the start of the index.
func NewDecoder(r io.ReadSeeker) *Decoder {
	return &Decoder{r: r}
}

// stateFn defines each individual state within the state machine that
// represents a revlog index.
type stateFn func(*Decoder) (stateFn, error)

// Decode reads the whole index and stores the header and the records in
// rl. Any failure aborts the decoding; rl is left without records in that
// case.
func (d *Decoder) Decode(rl *Revlog) error {
	if rl == nil {
		return ErrNilRevlog
	}

	d.m.Lock()
	defer d.m.Unlock()

	d.rl = rl
	rl.Records = nil

	var err error
	for state := readHeader; state != nil; {
		state, err = state(d)
		if err != nil {
			rl.Records = nil
			return err
		}
	}

	return nil
}

func readHeader(d *Decoder) (stateFn, error) {
	h, err := ReadHeader(d.r)
	if err != nil {
		return nil, err
	}

	size, ok := h.Version.RecordSize()
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, uint16(h.Version))
	}

	d.length, err = d.r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}

	if _, err := d.r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	d.rl.Header = h
	d.buf = make([]byte, size)

	trace.Index.Printf("revlog header: version=%s flags=%#x length=%d", h.Version, uint32(h.Flags), d.length)
	return readRecord, nil
}

func readRecord(d *Decoder) (stateFn, error) {
	pos, err := d.r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}

	rev := plumbing.Revision(len(d.rl.Records))
	switch {
	case pos == d.length:
		trace.Index.Printf("revlog index complete: %d records", rev)
		return nil, nil
	case pos > d.length:
		return nil, recordError(rev-1, "decode index", fmt.Errorf(
			"%w: payload ends at offset %d, past the end of file at %d", ErrCorruptIndex, pos, d.length))
	case d.length-pos < int64(len(d.buf)):
		return nil, recordError(rev, "decode index", fmt.Errorf(
			"%w: %w: %d trailing bytes at offset %d", ErrCorruptIndex, ErrTruncatedIndex, d.length-pos, pos))
	}

	if _, err := io.ReadFull(d.r, d.buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			err = fmt.Errorf("%w: at offset %d", ErrTruncatedIndex, pos)
		}

		return nil, recordError(rev, "decode index", err)
	}

	rec, err := decodeRecord(d.rl.Version, d.buf, pos)
	if err != nil {
		return nil, recordError(rev, "decode index", err)
	}

	if d.rl.Inline() {
		if _, err := d.r.Seek(int64(rec.RawLength()), io.SeekCurrent); err != nil {
			return nil, recordError(rev, "skip inline data", err)
		}
	}

	trace.Index.Printf("revlog record %d: node=%s offset=%d length=%d", rev, rec.ShortID(), rec.Offset(), rec.RawLength())
	d.rl.Records = append(d.rl.Records, rec)

	return readRecord, nil
}
