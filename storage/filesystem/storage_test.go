package filesystem

import (
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/suite"

	"github.com/go-hg/go-hg/internal/revlogtest"
	"github.com/go-hg/go-hg/plumbing"
	"github.com/go-hg/go-hg/plumbing/format/changeset"
	"github.com/go-hg/go-hg/plumbing/format/revlog"
)

const (
	firstText  = "0123456789abcdef0123456789abcdef01234567\nAlice <alice@example.com>\n1700000000 0\nREADME\n\ninitial import"
	secondText = "fedcba9876543210fedcba9876543210fedcba98\nBob <bob@example.com>\n1700003600 -3600 branch:stable\nREADME\nmain.go\n\nsecond change\n\nwith details"
)

type StorageSuite struct {
	suite.Suite
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

// writeChangelog lays out a store repository holding a changelog of texts.
func (s *StorageSuite) writeChangelog(fs billy.Filesystem, flags uint32, texts ...string) {
	index, data := revlogtest.Changelog(flags, texts...)
	s.Require().NoError(util.WriteFile(fs, "requires", []byte("revlogv1\nstore\nfncache\n"), 0o644))
	s.Require().NoError(util.WriteFile(fs, "store/00changelog.i", index, 0o644))
	if flags&revlogtest.Inline == 0 {
		s.Require().NoError(util.WriteFile(fs, "store/00changelog.d", data, 0o644))
	}
}

func (s *StorageSuite) TestChangelogInline() {
	fs := memfs.New()
	s.writeChangelog(fs, revlogtest.Inline, firstText, secondText)

	st := NewStorage(fs)
	rl, err := st.Changelog()
	s.Require().NoError(err)
	s.Equal(2, rl.Len())
	s.True(rl.Inline())

	again, err := st.Changelog()
	s.NoError(err)
	s.Same(rl, again)
}

func (s *StorageSuite) TestChangesetSplit() {
	fs := memfs.New()
	s.writeChangelog(fs, 0, firstText, secondText)

	st := NewStorage(fs)
	c, err := st.Changeset(1)
	s.Require().NoError(err)
	s.Equal("Bob <bob@example.com>", c.Author)
	s.Equal([]string{"README", "main.go"}, c.Files)
	s.Equal("second change\n\nwith details", c.Message)
	s.Equal("stable", c.Branch())
	s.Equal(-3600, c.Date.Offset)

	c, err = st.Changeset(0)
	s.Require().NoError(err)
	s.Equal("initial import", c.Message)
	s.Equal(changeset.DefaultBranch, c.Branch())
}

func (s *StorageSuite) TestChangesetCache() {
	fs := memfs.New()
	s.writeChangelog(fs, revlogtest.Inline, firstText)

	st := NewStorage(fs)
	c, err := st.Changeset(0)
	s.Require().NoError(err)

	cached, err := st.Changeset(0)
	s.NoError(err)
	s.Same(c, cached)

	st = NewStorageWithOptions(fs, Options{})
	c, err = st.Changeset(0)
	s.Require().NoError(err)

	fresh, err := st.Changeset(0)
	s.NoError(err)
	s.NotSame(c, fresh)
	s.Equal(c, fresh)
}

func (s *StorageSuite) TestChangesetDecodeError() {
	fs := memfs.New()
	index, _ := revlogtest.Build(revlogtest.VersionNG, revlogtest.Inline, []revlogtest.Record{
		{P1: revlogtest.NullRevision, P2: revlogtest.NullRevision, Payload: []byte("zjunk")},
	})
	s.Require().NoError(util.WriteFile(fs, "00changelog.i", index, 0o644))

	st := NewStorage(fs)
	_, err := st.Changeset(0)
	s.ErrorIs(err, changeset.ErrUnknownEncoding)

	var rerr *revlog.RecordError
	s.Require().ErrorAs(err, &rerr)
	s.Equal(plumbing.Revision(0), rerr.Rev)

	rl, err := st.Changelog()
	s.NoError(err)
	s.Equal(1, rl.Len())
}

func (s *StorageSuite) TestChangesetUnknownRevision() {
	fs := memfs.New()
	s.writeChangelog(fs, revlogtest.Inline, firstText)

	_, err := NewStorage(fs).Changeset(5)
	s.ErrorIs(err, revlog.ErrRevisionNotFound)
}

func (s *StorageSuite) TestChangelogMissing() {
	_, err := NewStorage(memfs.New()).Changelog()
	s.ErrorIs(err, ErrRevlogNotFound)
}

func (s *StorageSuite) TestStoreOverride() {
	fs := memfs.New()
	index, _ := revlogtest.Changelog(revlogtest.Inline, firstText)
	s.Require().NoError(util.WriteFile(fs, "store/00changelog.i", index, 0o644))

	_, err := NewStorage(fs).Changelog()
	s.ErrorIs(err, ErrRevlogNotFound)

	store := true
	rl, err := NewStorageWithOptions(fs, Options{Store: &store}).Changelog()
	s.NoError(err)
	s.Equal(1, rl.Len())
}

func (s *StorageSuite) TestFilelog() {
	fs := memfs.New()
	index, _ := revlogtest.Build(revlogtest.VersionNG, revlogtest.Inline, []revlogtest.Record{
		{P1: revlogtest.NullRevision, P2: revlogtest.NullRevision, Payload: []byte("uhello\n")},
	})
	s.Require().NoError(util.WriteFile(fs, "requires", []byte("store\n"), 0o644))
	s.Require().NoError(util.WriteFile(fs, "store/data/_r_e_a_d_m_e.i", index, 0o644))

	st := NewStorage(fs)
	rl, err := st.Filelog("README")
	s.Require().NoError(err)
	s.Equal(1, rl.Len())

	data, err := st.ReadData("data/README", rl, 0)
	s.NoError(err)
	s.Equal("uhello\n", string(data))
}

func (s *StorageSuite) TestFilelogFncache() {
	fs := memfs.New()
	index, _ := revlogtest.Build(revlogtest.VersionNG, revlogtest.Inline, []revlogtest.Record{
		{P1: revlogtest.NullRevision, P2: revlogtest.NullRevision, Payload: []byte("utip\n")},
	})
	s.Require().NoError(util.WriteFile(fs, "requires", []byte("revlogv1\nstore\nfncache\ndotencode\n"), 0o644))
	s.Require().NoError(util.WriteFile(fs, "store/data/~2ehgtags.i", index, 0o644))
	s.Require().NoError(util.WriteFile(fs, "store/data/au~78.txt.i", index, 0o644))

	st := NewStorage(fs)
	for _, path := range []string{".hgtags", "aux.txt"} {
		rl, err := st.Filelog(path)
		s.Require().NoError(err, path)
		s.Equal(1, rl.Len())

		data, err := st.ReadData("data/"+path, rl, 0)
		s.NoError(err)
		s.Equal("utip\n", string(data))
	}
}

func (s *StorageSuite) TestVerifyNode() {
	for _, flags := range []uint32{0, revlogtest.Inline} {
		fs := memfs.New()
		s.writeChangelog(fs, flags, firstText, secondText)

		st := NewStorage(fs)
		rl, err := st.Changelog()
		s.Require().NoError(err)

		for rev := 0; rev < rl.Len(); rev++ {
			s.NoError(st.VerifyNode("00changelog", rl, plumbing.Revision(rev)))
		}
	}
}

func (s *StorageSuite) TestVerifyNodeMismatch() {
	fs := memfs.New()
	index, _ := revlogtest.Build(revlogtest.VersionNG, revlogtest.Inline, []revlogtest.Record{
		{P1: revlogtest.NullRevision, P2: revlogtest.NullRevision, Node: revlogtest.Node(0x01, 32), Payload: []byte("uhello")},
	})
	s.Require().NoError(util.WriteFile(fs, "00changelog.i", index, 0o644))

	st := NewStorage(fs)
	rl, err := st.Changelog()
	s.Require().NoError(err)

	err = st.VerifyNode("00changelog", rl, 0)
	s.ErrorIs(err, ErrNodeMismatch)
}

func (s *StorageSuite) TestVerifyNodeDelta() {
	fs := memfs.New()
	index, _ := revlogtest.Build(revlogtest.VersionNG, revlogtest.Inline, []revlogtest.Record{
		{P1: revlogtest.NullRevision, P2: revlogtest.NullRevision, Payload: []byte("uhello")},
		{Base: 0, Link: 1, P1: 0, P2: revlogtest.NullRevision, Payload: []byte("udelta")},
	})
	s.Require().NoError(util.WriteFile(fs, "00changelog.i", index, 0o644))

	st := NewStorage(fs)
	rl, err := st.Changelog()
	s.Require().NoError(err)

	err = st.VerifyNode("00changelog", rl, 1)
	s.ErrorIs(err, ErrDeltaRevision)
}

func (s *StorageSuite) TestUseMmap() {
	fs := osfs.New(s.T().TempDir(), osfs.WithBoundOS())
	s.writeChangelog(fs, 0, firstText, secondText)

	st := NewStorageWithOptions(fs, Options{MaxCachedChangesets: 1, UseMmap: true})
	c, err := st.Changeset(1)
	s.Require().NoError(err)
	s.Equal("second change\n\nwith details", c.Message)

	rl, err := st.Changelog()
	s.Require().NoError(err)
	s.NoError(st.VerifyNode("00changelog", rl, 0))
}

func (s *StorageSuite) TestUseMmapFallback() {
	fs := memfs.New()
	s.writeChangelog(fs, revlogtest.Inline, firstText)

	c, err := NewStorageWithOptions(fs, Options{UseMmap: true}).Changeset(0)
	s.Require().NoError(err)
	s.Equal("initial import", c.Message)
}
