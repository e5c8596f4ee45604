package revlog

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-hg/go-hg/utils/binary"
)

// Version is the index layout version, the low 16 bits of the version word.
type Version uint16

const (
	// VersionV0 is the original layout with 76-byte records.
	VersionV0 Version = 0
	// VersionNG is the layout with 64-byte records.
	VersionNG Version = 1
)

// Record sizes in bytes.
const (
	RecordSizeV0 = 76
	RecordSizeNG = 64

	headerSize  = 4
	versionMask = 0x0000ffff
)

// RecordSize returns the fixed size of the records of v, and whether v is a
// known version.
func (v Version) RecordSize() (int, bool) {
	switch v {
	case VersionV0:
		return RecordSizeV0, true
	case VersionNG:
		return RecordSizeNG, true
	default:
		return 0, false
	}
}

func (v Version) String() string {
	switch v {
	case VersionV0:
		return "v0"
	case VersionNG:
		return "ng"
	default:
		return fmt.Sprintf("unknown(%d)", uint16(v))
	}
}

// Flags holds the high 16 bits of the version word, kept in place.
type Flags uint32

const (
	// FlagInlineData marks a revlog whose payloads follow their index
	// records in the index file.
	FlagInlineData Flags = 1 << 16
	// FlagGeneralDelta marks a revlog whose deltas may be computed against
	// any earlier revision rather than the previous one.
	FlagGeneralDelta Flags = 1 << 17
)

// Has reports whether all bits of flag are set.
func (f Flags) Has(flag Flags) bool {
	return f&flag == flag
}

// Header is the decoded version word of a revlog index.
type Header struct {
	Version Version
	Flags   Flags
}

// ParseHeader splits the version word w into version and flags.
func ParseHeader(w uint32) Header {
	version := w & versionMask
	return Header{
		Version: Version(version),
		Flags:   Flags(w &^ version),
	}
}

// ReadHeader reads the version word at the current position of r and
// restores the position afterwards, since the word is also the start of
// the first index record. It does not validate the version.
func ReadHeader(r io.ReadSeeker) (Header, error) {
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return Header{}, err
	}

	w, err := binary.ReadUint32(r)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Header{}, fmt.Errorf("%w: need %d bytes", ErrMalformedHeader, headerSize)
		}

		return Header{}, err
	}

	if _, err := r.Seek(pos, io.SeekStart); err != nil {
		return Header{}, err
	}

	return ParseHeader(w), nil
}
