package hg

import (
	"io"

	"github.com/go-hg/go-hg/plumbing"
	"github.com/go-hg/go-hg/plumbing/format/changeset"
	"github.com/go-hg/go-hg/storage/filesystem"
)

// ChangesetIter iterates the changesets of a changelog in revision order.
type ChangesetIter struct {
	s   *filesystem.Storage
	n   int
	pos int
}

// Next returns the next changeset. It returns io.EOF once every revision
// has been returned. A revision that fails to decode is reported as a
// *revlog.RecordError and the following call moves on to the next one.
func (iter *ChangesetIter) Next() (*changeset.Changeset, error) {
	if iter.pos >= iter.n {
		return nil, io.EOF
	}

	rev := plumbing.Revision(iter.pos)
	iter.pos++

	return iter.s.Changeset(rev)
}

// ForEach calls cb for each changeset until an error happens or the end of
// the iter is reached. If ErrStop is returned by cb the iteration stops but
// no error is returned.
func (iter *ChangesetIter) ForEach(cb func(*changeset.Changeset) error) error {
	defer iter.Close()

	for {
		c, err := iter.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if err := cb(c); err != nil {
			if err == ErrStop {
				return nil
			}

			return err
		}
	}
}

// Close releases the iterator. Later calls to Next return io.EOF.
func (iter *ChangesetIter) Close() {
	iter.pos = iter.n
}
