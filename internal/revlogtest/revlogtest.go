// Package revlogtest builds revlog files for tests.
package revlogtest

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"

	"github.com/go-hg/go-hg/plumbing"
	hgbinary "github.com/go-hg/go-hg/utils/binary"
)

// Header values.
const (
	VersionV0 = 0
	VersionNG = 1

	Inline       = 1 << 16
	GeneralDelta = 1 << 17

	NullRevision = -1
)

// Record describes one revision to encode.
type Record struct {
	Flags uint16
	Base  uint32
	Link  uint32
	// P1 and P2 are the parent revisions of NG records.
	P1, P2 int32
	// Parent1 and Parent2 are the parent nodes of V0 records.
	Parent1, Parent2 []byte
	Node             []byte
	Payload          []byte
}

// Build encodes records as a revlog index of the given version and flags.
// Payloads follow their record when the Inline flag is set and are
// returned as a separate data file otherwise.
func Build(version uint16, flags uint32, records []Record) (index, data []byte) {
	var idx, dat bytes.Buffer
	var offset uint64
	for i, r := range records {
		var rec bytes.Buffer
		switch version {
		case VersionNG:
			must(hgbinary.WriteUint48(&rec, offset))
			must(hgbinary.Write(&rec,
				r.Flags, uint32(len(r.Payload)), uint32(len(r.Payload)),
				r.Base, r.Link, uint32(r.P1), uint32(r.P2), fixed(r.Node, 32)))
		default:
			must(hgbinary.Write(&rec,
				uint32(offset), uint32(len(r.Payload)), r.Base, r.Link,
				fixed(r.Parent1, 20), fixed(r.Parent2, 20), fixed(r.Node, 20)))
		}

		b := rec.Bytes()
		if i == 0 {
			binary.BigEndian.PutUint32(b[0:4], uint32(version)|flags)
		}

		idx.Write(b)
		if flags&Inline != 0 {
			idx.Write(r.Payload)
		} else {
			dat.Write(r.Payload)
		}

		offset += uint64(len(r.Payload))
	}

	return idx.Bytes(), dat.Bytes()
}

// Changelog encodes a linear NG changelog holding texts, one snapshot
// revision per text, with valid nodes. Even revisions are stored as 'u'
// payloads and odd ones zlib compressed.
func Changelog(flags uint32, texts ...string) (index, data []byte) {
	records := make([]Record, len(texts))
	parent := plumbing.NullNode()
	for i, text := range texts {
		p1 := int32(i - 1)
		payload := append([]byte{'u'}, text...)
		if i%2 == 1 {
			payload = Compress([]byte(text))
		}

		node := plumbing.ComputeNode(parent, plumbing.NullNode(), []byte(text))
		records[i] = Record{
			Base:    uint32(i),
			Link:    uint32(i),
			P1:      p1,
			P2:      NullRevision,
			Node:    node,
			Payload: payload,
		}

		parent = node
	}

	return Build(VersionNG, flags, records)
}

// Compress returns data as a zlib stream.
func Compress(data []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, err := w.Write(data)
	must(err)
	must(w.Close())

	return buf.Bytes()
}

// Node returns size bytes counting up from seed.
func Node(seed byte, size int) []byte {
	b := make([]byte, size)
	for i := range b {
		b[i] = seed + byte(i)
	}
	return b
}

func fixed(b []byte, size int) []byte {
	out := make([]byte, size)
	copy(out, b)
	return out
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
