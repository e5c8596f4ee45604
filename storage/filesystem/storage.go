// Package filesystem is a storage backend based on filesystems
package filesystem

import (
	"bytes"
	"errors"
	"io"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/golang/groupcache/lru"

	"github.com/go-hg/go-hg/plumbing"
	"github.com/go-hg/go-hg/plumbing/format/changeset"
	"github.com/go-hg/go-hg/plumbing/format/revlog"
	"github.com/go-hg/go-hg/storage/filesystem/dothg"
	"github.com/go-hg/go-hg/storage/filesystem/mmap"
	"github.com/go-hg/go-hg/utils/ioutil"
	"github.com/go-hg/go-hg/utils/trace"
)

// DefaultMaxCachedChangesets is the default size of the changeset cache.
const DefaultMaxCachedChangesets = 256

var (
	// ErrRevlogNotFound is returned when a revlog does not exist.
	ErrRevlogNotFound = dothg.ErrRevlogNotFound
	// ErrDeltaRevision is returned by VerifyNode for revisions stored as a
	// delta, whose full text is not available.
	ErrDeltaRevision = errors.New("revision is stored as a delta")
	// ErrNodeMismatch is returned by VerifyNode when the hash of a revision
	// does not match its stored node.
	ErrNodeMismatch = errors.New("node mismatch")
)

// Options holds configuration for the storage.
type Options struct {
	// MaxCachedChangesets is the number of decoded changesets kept in
	// memory. Zero disables the cache.
	MaxCachedChangesets int
	// Store forces the repository layout, see dothg.Options.
	Store *bool
	// UseMmap reads revlog files through memory mappings where the
	// platform and the filesystem allow it, and through plain reads
	// otherwise.
	UseMmap bool
}

// Storage reads revlogs from a .hg directory. It is safe for concurrent
// use: every read opens its own file handle.
type Storage struct {
	dir     *dothg.DotHG
	options Options

	m         sync.Mutex
	changelog *revlog.Revlog
	cache     *lru.Cache
}

// NewStorage returns a new Storage backed by the .hg directory fs, using
// the default options.
func NewStorage(fs billy.Filesystem) *Storage {
	return NewStorageWithOptions(fs, Options{MaxCachedChangesets: DefaultMaxCachedChangesets})
}

// NewStorageWithOptions returns a new Storage with extra options.
func NewStorageWithOptions(fs billy.Filesystem, o Options) *Storage {
	s := &Storage{
		dir:     dothg.NewWithOptions(fs, dothg.Options{Store: o.Store}),
		options: o,
	}

	if o.MaxCachedChangesets > 0 {
		s.cache = lru.New(o.MaxCachedChangesets)
	}

	return s
}

// Filesystem returns the underlying filesystem.
func (s *Storage) Filesystem() billy.Filesystem {
	return s.dir.Fs()
}

// Revlog decodes the index of the revlog name, for example
// dothg.ChangelogName.
func (s *Storage) Revlog(name string) (rl *revlog.Revlog, err error) {
	f, err := s.dir.Index(name)
	if err != nil {
		return nil, err
	}
	defer ioutil.CheckClose(f, &err)

	r, closer := s.reader(f)
	defer ioutil.CheckClose(closer, &err)

	rl, err = revlog.Load(r)
	if err != nil {
		return nil, err
	}

	trace.Storage.Printf("storage: loaded %s: %d revisions inline=%t", name, rl.Len(), rl.Inline())
	return rl, nil
}

// Filelog decodes the index of the history of the tracked file path.
func (s *Storage) Filelog(path string) (*revlog.Revlog, error) {
	return s.Revlog(dothg.FilelogName(path))
}

// ReadData returns the stored payload of rev in the revlog name, whose
// index is rl. The payload is read from the index file for inline
// revlogs and from the data file otherwise.
func (s *Storage) ReadData(name string, rl *revlog.Revlog, rev plumbing.Revision) (data []byte, err error) {
	var f billy.File
	if rl.Inline() {
		f, err = s.dir.Index(name)
	} else {
		f, err = s.dir.Data(name)
	}
	if err != nil {
		return nil, err
	}
	defer ioutil.CheckClose(f, &err)

	r, closer := s.reader(f)
	defer ioutil.CheckClose(closer, &err)

	return rl.ReadData(r, rev)
}

// reader returns the reader for f, a mapping when UseMmap is set and f can
// be mapped. Closing the returned closer does not close f.
func (s *Storage) reader(f billy.File) (io.ReadSeeker, io.Closer) {
	if !s.options.UseMmap {
		return f, nopCloser{}
	}

	m, err := mmap.Map(f)
	if err != nil {
		trace.Storage.Printf("storage: mmap %s: %v", f.Name(), err)
		return f, nopCloser{}
	}

	return m, m
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Changelog returns the changelog index. It is decoded once and shared by
// later calls.
func (s *Storage) Changelog() (*revlog.Revlog, error) {
	s.m.Lock()
	defer s.m.Unlock()

	if s.changelog != nil {
		return s.changelog, nil
	}

	rl, err := s.Revlog(dothg.ChangelogName)
	if err != nil {
		return nil, err
	}

	s.changelog = rl
	return rl, nil
}

// Changeset decodes the changelog revision rev. Decoding failures are
// reported as *revlog.RecordError and leave the changelog usable.
func (s *Storage) Changeset(rev plumbing.Revision) (*changeset.Changeset, error) {
	if c, ok := s.cached(rev); ok {
		trace.Storage.Printf("storage: changeset %d from cache", rev)
		return c, nil
	}

	rl, err := s.Changelog()
	if err != nil {
		return nil, err
	}

	payload, err := s.ReadData(dothg.ChangelogName, rl, rev)
	if err != nil {
		return nil, err
	}

	c, err := changeset.Decode(payload)
	if err != nil {
		return nil, &revlog.RecordError{Rev: rev, Op: "decode changeset", Err: err}
	}

	s.add(rev, c)
	return c, nil
}

func (s *Storage) cached(rev plumbing.Revision) (*changeset.Changeset, bool) {
	if s.cache == nil {
		return nil, false
	}

	s.m.Lock()
	defer s.m.Unlock()

	v, ok := s.cache.Get(rev)
	if !ok {
		return nil, false
	}

	return v.(*changeset.Changeset), true
}

func (s *Storage) add(rev plumbing.Revision, c *changeset.Changeset) {
	if s.cache == nil {
		return
	}

	s.m.Lock()
	s.cache.Add(rev, c)
	s.m.Unlock()
}

// VerifyNode hashes the full text of rev in the revlog name, whose index
// is rl, and compares it with the stored node. Only revisions stored as
// full texts can be verified, others fail with ErrDeltaRevision.
func (s *Storage) VerifyNode(name string, rl *revlog.Revlog, rev plumbing.Revision) error {
	snapshot, err := rl.IsSnapshot(rev)
	if err != nil {
		return err
	}

	if !snapshot {
		return &revlog.RecordError{Rev: rev, Op: "verify node", Err: ErrDeltaRevision}
	}

	payload, err := s.ReadData(name, rl, rev)
	if err != nil {
		return err
	}

	text, err := changeset.DecompressPayload(payload)
	if err != nil {
		return &revlog.RecordError{Rev: rev, Op: "verify node", Err: err}
	}

	p1, p2, err := rl.ParentNodes(rev)
	if err != nil {
		return err
	}

	stored, err := rl.SHA1Node(rev)
	if err != nil {
		return err
	}

	got := plumbing.ComputeNode(p1, p2, text)
	if !bytes.Equal(got, stored) {
		return &revlog.RecordError{Rev: rev, Op: "verify node", Err: ErrNodeMismatch}
	}

	return nil
}
