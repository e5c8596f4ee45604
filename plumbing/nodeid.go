package plumbing

import (
	"bytes"
	"encoding/hex"
)

const (
	// NodeSize is the canonical width of a NodeID in bytes.
	NodeSize = 32
	// NodeHexSize is the length of the hexadecimal form of a NodeID.
	NodeHexSize = NodeSize * 2
	// SHA1Size is the width of the node identifiers stored by version 0
	// revlogs, and of the hash computed by ComputeNode.
	SHA1Size = 20
	// ShortSize is the number of leading bytes used by NodeID.Short.
	ShortSize = 6
)

var zeroNode NodeID

// NodeID is the identity of a revision, normalized to NodeSize bytes
// regardless of the width stored on disk. Narrower identifiers are
// zero-extended: they occupy the trailing bytes and the leading bytes are
// zero.
type NodeID [NodeSize]byte

// NewNodeID widens raw to a NodeID. raw must be at most NodeSize bytes long,
// longer inputs are truncated to their trailing NodeSize bytes.
func NewNodeID(raw []byte) NodeID {
	var id NodeID
	if len(raw) > NodeSize {
		raw = raw[len(raw)-NodeSize:]
	}

	copy(id[NodeSize-len(raw):], raw)
	return id
}

// Bytes returns a copy of the NodeSize bytes of the identifier.
func (n NodeID) Bytes() []byte {
	b := make([]byte, NodeSize)
	copy(b, n[:])
	return b
}

// IsZero returns true if the identifier only contains 0s.
func (n NodeID) IsZero() bool {
	return n == zeroNode
}

// Equal reports whether n and o are the same identifier.
func (n NodeID) Equal(o NodeID) bool {
	return bytes.Equal(n[:], o[:])
}

// String returns the lowercase hexadecimal representation of all NodeSize
// bytes.
func (n NodeID) String() string {
	return hex.EncodeToString(n[:])
}

// Short returns the lowercase hexadecimal representation of the first
// ShortSize bytes.
func (n NodeID) Short() string {
	return hex.EncodeToString(n[:ShortSize])
}
