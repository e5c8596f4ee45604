package revlog

import (
	"fmt"

	"github.com/go-hg/go-hg/plumbing"
)

// SHA1Node returns the plumbing.SHA1Size bytes of the node of rev as
// hashed by Mercurial, without the canonical widening of NodeID.
func (rl *Revlog) SHA1Node(rev plumbing.Revision) ([]byte, error) {
	rec, err := rl.Record(rev)
	if err != nil {
		return nil, err
	}

	switch r := rec.(type) {
	case *RecordV0:
		n := r.Node()
		return n[:], nil
	case *RecordNG:
		n := make([]byte, plumbing.SHA1Size)
		copy(n, r.node[:])
		return n, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedVersion, rec)
	}
}

// ParentNodes returns the SHA-1 nodes of the parents of rev. A missing
// parent is plumbing.NullNode().
func (rl *Revlog) ParentNodes(rev plumbing.Revision) (p1, p2 []byte, err error) {
	rec, err := rl.Record(rev)
	if err != nil {
		return nil, nil, err
	}

	switch r := rec.(type) {
	case *RecordV0:
		a, b := r.Parents()
		return a[:], b[:], nil
	case *RecordNG:
		a, b := r.Parents()
		if p1, err = rl.parentNode(rev, a); err != nil {
			return nil, nil, err
		}
		if p2, err = rl.parentNode(rev, b); err != nil {
			return nil, nil, err
		}
		return p1, p2, nil
	default:
		return nil, nil, fmt.Errorf("%w: %T", ErrUnsupportedVersion, rec)
	}
}

func (rl *Revlog) parentNode(rev, parent plumbing.Revision) ([]byte, error) {
	if parent.IsNull() {
		return plumbing.NullNode(), nil
	}

	n, err := rl.SHA1Node(parent)
	if err != nil {
		return nil, recordError(rev, "resolve parent", err)
	}

	return n, nil
}
