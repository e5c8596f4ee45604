package revlog

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-hg/go-hg/plumbing"
	"github.com/go-hg/go-hg/utils/trace"
)

// Revlog is a decoded revlog index. Records are kept in on-disk order, the
// position of a record is its revision number.
type Revlog struct {
	Header
	Records []IndexRecord
}

// Load decodes the index read from r, which must be positioned at the start
// of the index.
func Load(r io.ReadSeeker) (*Revlog, error) {
	rl := &Revlog{}
	if err := NewDecoder(r).Decode(rl); err != nil {
		return nil, err
	}

	return rl, nil
}

// Len returns the number of revisions.
func (rl *Revlog) Len() int {
	return len(rl.Records)
}

// HasFlag reports whether flag is set in the header.
func (rl *Revlog) HasFlag(flag Flags) bool {
	return rl.Flags.Has(flag)
}

// Inline reports whether payloads are stored in the index file.
func (rl *Revlog) Inline() bool {
	return rl.HasFlag(FlagInlineData)
}

// GeneralDelta reports whether the general delta flag is set.
func (rl *Revlog) GeneralDelta() bool {
	return rl.HasFlag(FlagGeneralDelta)
}

// RecordSize returns the size of one index record.
func (rl *Revlog) RecordSize() int {
	size, _ := rl.Version.RecordSize()
	return size
}

// Record returns the index record of rev.
func (rl *Revlog) Record(rev plumbing.Revision) (IndexRecord, error) {
	if rev < 0 || int(rev) >= len(rl.Records) {
		return nil, fmt.Errorf("%w: %d", ErrRevisionNotFound, rev)
	}

	return rl.Records[rev], nil
}

// IsSnapshot reports whether the payload of rev is a full text rather than
// a delta, that is whether rev is its own base revision.
func (rl *Revlog) IsSnapshot(rev plumbing.Revision) (bool, error) {
	rec, err := rl.Record(rev)
	if err != nil {
		return false, err
	}

	return rec.BaseRevision() == uint32(rev), nil
}

// DataOffset returns the absolute offset of the payload of rev. For inline
// revlogs it is in the index file and accounts for the rev+1 index records
// that precede the payload; otherwise it is the offset stored in the
// record, in the data file.
func (rl *Revlog) DataOffset(rev plumbing.Revision) (int64, error) {
	rec, err := rl.Record(rev)
	if err != nil {
		return 0, err
	}

	offset := int64(rec.Offset())
	if rl.Inline() {
		offset += int64(rec.Size()) * (int64(rev) + 1)
	}

	return offset, nil
}

// ReadData returns the payload of rev as stored on disk. r is the index
// file for inline revlogs and the data file otherwise. Failures are
// reported as *RecordError.
func (rl *Revlog) ReadData(r io.ReadSeeker, rev plumbing.Revision) ([]byte, error) {
	offset, err := rl.DataOffset(rev)
	if err != nil {
		return nil, err
	}

	length := rl.Records[rev].RawLength()
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, recordError(rev, "read data", err)
	}

	if offset+int64(length) > size {
		return nil, recordError(rev, "read data", fmt.Errorf(
			"%w: %d bytes at offset %d, source holds %d", ErrShortRead, length, offset, size))
	}

	buf := make([]byte, length)
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return nil, recordError(rev, "read data", err)
	}

	n, err := io.ReadFull(r, buf)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			err = fmt.Errorf("%w: got %d of %d bytes at offset %d", ErrShortRead, n, length, offset)
		}

		return nil, recordError(rev, "read data", err)
	}

	trace.Payload.Printf("revlog payload %d: offset=%d length=%d", rev, offset, length)
	return buf, nil
}
