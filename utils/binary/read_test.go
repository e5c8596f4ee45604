package binary

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/suite"
)

type BinarySuite struct {
	suite.Suite
}

func TestBinarySuite(t *testing.T) {
	suite.Run(t, new(BinarySuite))
}

func (s *BinarySuite) TestReadUint32() {
	buf := bytes.NewBuffer(nil)
	err := binary.Write(buf, binary.BigEndian, uint32(42))
	s.NoError(err)

	i32, err := ReadUint32(buf)
	s.NoError(err)
	s.Equal(uint32(42), i32)
}

func (s *BinarySuite) TestReadUint32Short() {
	_, err := ReadUint32(bytes.NewBuffer([]byte{0x01, 0x02}))
	s.ErrorIs(err, io.ErrUnexpectedEOF)
}

func (s *BinarySuite) TestUint48() {
	v := Uint48([]byte{0x80, 0x01, 0x02, 0x03, 0x04, 0x05})
	s.Equal(uint64(0x800102030405), v)
}

func (s *BinarySuite) TestUint48NoSignExtension() {
	v := Uint48([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xaa})
	s.Equal(uint64(0x0000ffffffffffff), v)
}
