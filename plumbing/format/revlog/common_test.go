package revlog

import (
	"github.com/go-hg/go-hg/internal/revlogtest"
)

var node = revlogtest.Node

func fixed(b []byte, size int) []byte {
	out := make([]byte, size)
	copy(out, b)
	return out
}

func buildRevlog(v Version, flags Flags, records []revlogtest.Record) (index, data []byte) {
	return revlogtest.Build(uint16(v), uint32(flags), records)
}

// threeRecords returns a root revision, a child snapshot and a merge stored
// as a delta against revision 1, with nodes of size bytes.
func threeRecords(size int) []revlogtest.Record {
	return []revlogtest.Record{
		{Base: 0, Link: 0, P1: revlogtest.NullRevision, P2: revlogtest.NullRevision,
			Node: node(0x10, size), Payload: []byte("u first revision")},
		{Base: 1, Link: 1, P1: 0, P2: revlogtest.NullRevision,
			Parent1: node(0x10, 20), Node: node(0x20, size), Payload: []byte("u second")},
		{Base: 1, Link: 2, P1: 1, P2: 0,
			Parent1: node(0x20, 20), Parent2: node(0x10, 20), Node: node(0x30, size), Payload: []byte("u third revision payload")},
	}
}
