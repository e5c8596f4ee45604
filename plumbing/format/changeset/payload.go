package changeset

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/go-hg/go-hg/utils/ioutil"
	"github.com/go-hg/go-hg/utils/sync"
	"github.com/go-hg/go-hg/utils/trace"
)

// Payload tags.
const (
	TagEmpty = 0x00
	TagZlib  = 'x'
	TagText  = 'u'
)

// DecompressPayload returns the bytes held by a stored payload, without
// checking that they are text. An empty payload decodes to no bytes.
func DecompressPayload(payload []byte) ([]byte, error) {
	if len(payload) == 0 {
		return nil, nil
	}

	var out []byte
	switch tag := payload[0]; tag {
	case TagEmpty:
		return nil, nil
	case TagZlib:
		var err error
		out, err = inflate(payload)
		if err != nil {
			return nil, err
		}
	case TagText:
		out = payload[1:]
	default:
		return nil, fmt.Errorf("%w: tag 0x%02x", ErrUnknownEncoding, tag)
	}

	trace.Payload.Printf("payload: tag=%q stored=%d decoded=%d", payload[0], len(payload), len(out))
	return out, nil
}

// DecodePayload returns the text held by a stored payload. An empty payload
// decodes to an empty text.
func DecodePayload(payload []byte) (string, error) {
	text, err := DecompressPayload(payload)
	if err != nil {
		return "", err
	}

	if !utf8.Valid(text) {
		return "", ErrInvalidText
	}

	return string(text), nil
}

func inflate(payload []byte) ([]byte, error) {
	zr, err := sync.GetZlibReader(bytes.NewReader(payload))
	defer sync.PutZlibReader(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptPayload, err)
	}

	buf := sync.GetBytesBuffer()
	defer sync.PutBytesBuffer(buf)

	if _, err := ioutil.Copy(buf, zr); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptPayload, err)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}
