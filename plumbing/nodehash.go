package plumbing

import (
	"bytes"

	"github.com/pjbgf/sha1cd"
)

// NullNode returns the SHA1Size byte node of NullRevision. Every call
// returns a new slice.
func NullNode() []byte {
	return make([]byte, SHA1Size)
}

// ComputeNode returns the node hash of a revision whose full text is text
// and whose parents have the nodes p1 and p2. The parents are hashed in
// ascending byte order, so their order in the index does not matter. Both
// parents must be SHA1Size bytes long; use NullNode() for a missing parent.
func ComputeNode(p1, p2, text []byte) []byte {
	a, b := p1, p2
	if bytes.Compare(a, b) > 0 {
		a, b = b, a
	}

	h := sha1cd.New()
	h.Write(a)
	h.Write(b)
	h.Write(text)

	return h.Sum(nil)
}
