package binary

import (
	"bytes"
	"encoding/binary"
)

func (s *BinarySuite) TestWrite() {
	expected := bytes.NewBuffer(nil)
	err := binary.Write(expected, binary.BigEndian, int64(42))
	s.NoError(err)
	err = binary.Write(expected, binary.BigEndian, int32(42))
	s.NoError(err)

	buf := bytes.NewBuffer(nil)
	err = Write(buf, int64(42), int32(42))
	s.NoError(err)
	s.Equal(expected, buf)
}

func (s *BinarySuite) TestWriteUint48() {
	buf := bytes.NewBuffer(nil)
	err := WriteUint48(buf, 0xffff123456789abc)
	s.NoError(err)
	s.Equal([]byte{0x12, 0x34, 0x56, 0x78, 0x9a, 0xbc}, buf.Bytes())
	s.Equal(uint64(0x123456789abc), Uint48(buf.Bytes()))
}
