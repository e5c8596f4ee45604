package revlog

import (
	"encoding/binary"
	"fmt"

	"github.com/go-hg/go-hg/plumbing"
	hgbinary "github.com/go-hg/go-hg/utils/binary"
)

// IndexRecord is one decoded index record. The set of implementations is
// closed: *RecordV0 and *RecordNG. All records of one revlog share the
// same implementation.
type IndexRecord interface {
	// Offset returns the payload offset stored in the record.
	Offset() uint64
	// RawLength returns the number of payload bytes stored on disk. This is
	// the compressed length for NG records and the stored length for V0
	// records; the two are not comparable.
	RawLength() uint32
	// BaseRevision returns the base revision of the delta chain.
	BaseRevision() uint32
	// LinkRevision returns the changelog revision that introduced this
	// revision.
	LinkRevision() uint32
	// Flags returns the per-record flags, always 0 for V0 records.
	Flags() uint16
	// NodeID returns the node widened to plumbing.NodeSize bytes.
	NodeID() plumbing.NodeID
	// FullID returns the hexadecimal form of NodeID.
	FullID() string
	// ShortID returns the hexadecimal form of the first
	// plumbing.ShortSize bytes of NodeID.
	ShortID() string
	// Size returns the fixed on-disk size of the record.
	Size() int

	isIndexRecord()
}

// RecordV0 is a record of a VersionV0 index.
type RecordV0 struct {
	offset  uint32
	length  uint32
	baseRev uint32
	linkRev uint32
	parent1 [plumbing.SHA1Size]byte
	parent2 [plumbing.SHA1Size]byte
	node    [plumbing.SHA1Size]byte
}

// DecodeRecordV0 decodes a V0 record from the first RecordSizeV0 bytes of b.
func DecodeRecordV0(b []byte) (*RecordV0, error) {
	if len(b) < RecordSizeV0 {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrTruncatedIndex, len(b), RecordSizeV0)
	}

	r := &RecordV0{
		offset:  binary.BigEndian.Uint32(b[0:4]),
		length:  binary.BigEndian.Uint32(b[4:8]),
		baseRev: binary.BigEndian.Uint32(b[8:12]),
		linkRev: binary.BigEndian.Uint32(b[12:16]),
	}
	copy(r.parent1[:], b[16:36])
	copy(r.parent2[:], b[36:56])
	copy(r.node[:], b[56:76])

	return r, nil
}

func (r *RecordV0) Offset() uint64       { return uint64(r.offset) }
func (r *RecordV0) RawLength() uint32    { return r.length }
func (r *RecordV0) BaseRevision() uint32 { return r.baseRev }
func (r *RecordV0) LinkRevision() uint32 { return r.linkRev }
func (r *RecordV0) Flags() uint16        { return 0 }
func (r *RecordV0) Size() int            { return RecordSizeV0 }
func (r *RecordV0) isIndexRecord()       {}

// NodeID returns the 20-byte node zero-extended to plumbing.NodeSize bytes.
func (r *RecordV0) NodeID() plumbing.NodeID { return plumbing.NewNodeID(r.node[:]) }
func (r *RecordV0) FullID() string          { return r.NodeID().String() }
func (r *RecordV0) ShortID() string         { return r.NodeID().Short() }

// Node returns the node as stored.
func (r *RecordV0) Node() [plumbing.SHA1Size]byte { return r.node }

// Parents returns the nodes of both parents as stored. A missing parent is
// plumbing.NullNode().
func (r *RecordV0) Parents() (p1, p2 [plumbing.SHA1Size]byte) {
	return r.parent1, r.parent2
}

// RecordNG is a record of a VersionNG index.
type RecordNG struct {
	offset             uint64
	flags              uint16
	compressedLength   uint32
	uncompressedLength uint32
	baseRev            uint32
	linkRev            uint32
	parent1            uint32
	parent2            uint32
	node               [plumbing.NodeSize]byte
}

// DecodeRecordNG decodes an NG record from the first RecordSizeNG bytes of
// b. pos is the position of b in the index file: the offset field of the
// record at position 0 overlaps the version word, so its offset is
// reported as 0.
func DecodeRecordNG(b []byte, pos int64) (*RecordNG, error) {
	if len(b) < RecordSizeNG {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrTruncatedIndex, len(b), RecordSizeNG)
	}

	r := &RecordNG{
		flags:              binary.BigEndian.Uint16(b[6:8]),
		compressedLength:   binary.BigEndian.Uint32(b[8:12]),
		uncompressedLength: binary.BigEndian.Uint32(b[12:16]),
		baseRev:            binary.BigEndian.Uint32(b[16:20]),
		linkRev:            binary.BigEndian.Uint32(b[20:24]),
		parent1:            binary.BigEndian.Uint32(b[24:28]),
		parent2:            binary.BigEndian.Uint32(b[28:32]),
	}
	if pos != 0 {
		r.offset = hgbinary.Uint48(b[0:6])
	}
	copy(r.node[:], b[32:64])

	return r, nil
}

func (r *RecordNG) Offset() uint64          { return r.offset }
func (r *RecordNG) RawLength() uint32       { return r.compressedLength }
func (r *RecordNG) BaseRevision() uint32    { return r.baseRev }
func (r *RecordNG) LinkRevision() uint32    { return r.linkRev }
func (r *RecordNG) Flags() uint16           { return r.flags }
func (r *RecordNG) Size() int               { return RecordSizeNG }
func (r *RecordNG) NodeID() plumbing.NodeID { return plumbing.NodeID(r.node) }
func (r *RecordNG) FullID() string          { return r.NodeID().String() }
func (r *RecordNG) ShortID() string         { return r.NodeID().Short() }
func (r *RecordNG) isIndexRecord()          {}

// UncompressedLength returns the length of the revision text once the
// payload is decompressed.
func (r *RecordNG) UncompressedLength() uint32 { return r.uncompressedLength }

// Parents returns the revisions of both parents. A missing parent is
// plumbing.NullRevision.
func (r *RecordNG) Parents() (p1, p2 plumbing.Revision) {
	return plumbing.RevisionFromUint32(r.parent1), plumbing.RevisionFromUint32(r.parent2)
}

func decodeRecord(v Version, b []byte, pos int64) (IndexRecord, error) {
	switch v {
	case VersionV0:
		r, err := DecodeRecordV0(b)
		if err != nil {
			return nil, err
		}
		return r, nil
	case VersionNG:
		r, err := DecodeRecordNG(b, pos)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, v)
	}
}
