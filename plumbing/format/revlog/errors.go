package revlog

import (
	"errors"
	"fmt"

	"github.com/go-hg/go-hg/plumbing"
)

var (
	// ErrMalformedHeader is returned when the index is too short to hold
	// the version word.
	ErrMalformedHeader = errors.New("malformed revlog header")
	// ErrUnsupportedVersion is returned when the index version is neither
	// VersionV0 nor VersionNG.
	ErrUnsupportedVersion = errors.New("unsupported revlog version")
	// ErrTruncatedIndex is returned when fewer bytes than a full record
	// are available to the record decoder.
	ErrTruncatedIndex = errors.New("truncated index record")
	// ErrShortRead is returned when a payload is shorter than the length
	// recorded in its index record.
	ErrShortRead = errors.New("short read")
	// ErrCorruptIndex is returned when the index records do not end
	// exactly at the end of the index file.
	ErrCorruptIndex = errors.New("corrupt index")
	// ErrRevisionNotFound is returned when a revision is not in the index.
	ErrRevisionNotFound = errors.New("revision not found")
	// ErrNilRevlog is returned by Decode when a nil Revlog is used.
	ErrNilRevlog = errors.New("nil revlog")
)

// RecordError reports a failure tied to a single revision. It unwraps to
// the underlying error, so errors.Is works against the sentinel errors of
// this package and of the changeset package.
type RecordError struct {
	Rev plumbing.Revision
	Op  string
	Err error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s revision %d: %s", e.Op, e.Rev, e.Err)
}

// Unwrap returns the wrapped error.
func (e *RecordError) Unwrap() error {
	return e.Err
}

func recordError(rev plumbing.Revision, op string, err error) error {
	if err == nil {
		return nil
	}

	return &RecordError{Rev: rev, Op: op, Err: err}
}
