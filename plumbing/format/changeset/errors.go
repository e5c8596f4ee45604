package changeset

import "errors"

var (
	// ErrUnknownEncoding is returned when the payload tag is not one of
	// the supported encodings.
	ErrUnknownEncoding = errors.New("unknown payload encoding")
	// ErrCorruptPayload is returned when a compressed payload cannot be
	// decompressed.
	ErrCorruptPayload = errors.New("corrupt payload")
	// ErrInvalidText is returned when the decoded payload is not valid
	// UTF-8.
	ErrInvalidText = errors.New("payload text is not valid utf-8")
	// ErrMalformedDate is returned when the date line does not start with
	// two integers.
	ErrMalformedDate = errors.New("malformed date")
	// ErrMalformedExtra is returned when an extra field has no key.
	ErrMalformedExtra = errors.New("malformed extra field")
)
