package binary

import (
	"encoding/binary"
	"io"
)

// Write writes the binary representation of data into w, using BigEndian order
// https://golang.org/pkg/encoding/binary/#Write
func Write(w io.Writer, data ...interface{}) error {
	for _, v := range data {
		if err := binary.Write(w, binary.BigEndian, v); err != nil {
			return err
		}
	}

	return nil
}

// WriteUint48 writes the low 48 bits of value into w as 6 bytes, in BigEndian
// order. The upper 16 bits are discarded.
func WriteUint48(w io.Writer, value uint64) error {
	b := [6]byte{
		byte(value >> 40), byte(value >> 32), byte(value >> 24),
		byte(value >> 16), byte(value >> 8), byte(value),
	}

	_, err := w.Write(b[:])
	return err
}
