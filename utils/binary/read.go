// Package binary implements syntax-sugar functions on top of the standard
// library binary package
package binary

import (
	"encoding/binary"
	"io"
)

// ReadUint32 reads 4 bytes and returns them as a BigEndian uint32
func ReadUint32(r io.Reader) (uint32, error) {
	var v uint32
	if err := binary.Read(r, binary.BigEndian, &v); err != nil {
		return 0, err
	}

	return v, nil
}

// Uint48 decodes the first 6 bytes of b as a BigEndian unsigned integer. The
// upper 16 bits of the result are always zero. It panics if len(b) < 6.
func Uint48(b []byte) uint64 {
	_ = b[5]
	return uint64(b[5]) | uint64(b[4])<<8 | uint64(b[3])<<16 |
		uint64(b[2])<<24 | uint64(b[1])<<32 | uint64(b[0])<<40
}
