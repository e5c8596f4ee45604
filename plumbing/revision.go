package plumbing

import "strconv"

// Revision is the position of a record in a revlog index. Revision numbers
// are local to one revlog.
type Revision int32

// NullRevision is the revision used as parent of root revisions.
const NullRevision Revision = -1

// RevisionFromUint32 converts an on-disk revision field. 0xFFFFFFFF maps to
// NullRevision.
func RevisionFromUint32(v uint32) Revision {
	return Revision(int32(v))
}

// IsNull reports whether r is NullRevision.
func (r Revision) IsNull() bool {
	return r == NullRevision
}

func (r Revision) String() string {
	return strconv.Itoa(int(r))
}
