package dothg

import (
	"encoding/hex"
	"io"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/pjbgf/sha1cd"
	"github.com/stretchr/testify/suite"
)

type SuiteDotHG struct {
	suite.Suite
}

func TestSuiteDotHG(t *testing.T) {
	suite.Run(t, new(SuiteDotHG))
}

func (s *SuiteDotHG) EmptyFS() billy.Filesystem { return memfs.New() }

func (s *SuiteDotHG) TestRequiresMissing() {
	dir := New(s.EmptyFS())

	reqs, err := dir.Requires()
	s.NoError(err)
	s.Empty(reqs)

	store, err := dir.HasStore()
	s.NoError(err)
	s.False(store)
}

func (s *SuiteDotHG) TestRequires() {
	fs := s.EmptyFS()
	s.Require().NoError(util.WriteFile(fs, "requires", []byte("revlogv1\nstore\n\nfncache\n"), 0o644))

	dir := New(fs)
	reqs, err := dir.Requires()
	s.NoError(err)
	s.Equal([]string{"revlogv1", "store", "fncache"}, reqs)

	store, err := dir.HasStore()
	s.NoError(err)
	s.True(store)
}

func (s *SuiteDotHG) TestIndexWithStore() {
	fs := s.EmptyFS()
	s.Require().NoError(util.WriteFile(fs, "requires", []byte("store\n"), 0o644))
	s.Require().NoError(util.WriteFile(fs, "store/00changelog.i", []byte("index"), 0o644))
	s.Require().NoError(util.WriteFile(fs, "store/00changelog.d", []byte("data"), 0o644))

	dir := New(fs)
	f, err := dir.Index(ChangelogName)
	s.Require().NoError(err)
	content, err := io.ReadAll(f)
	s.NoError(err)
	s.Equal("index", string(content))
	s.NoError(f.Close())

	f, err = dir.Data(ChangelogName)
	s.Require().NoError(err)
	content, err = io.ReadAll(f)
	s.NoError(err)
	s.Equal("data", string(content))
	s.NoError(f.Close())
}

func (s *SuiteDotHG) TestIndexWithoutStore() {
	fs := s.EmptyFS()
	s.Require().NoError(util.WriteFile(fs, "00changelog.i", []byte("flat"), 0o644))

	f, err := New(fs).Index(ChangelogName)
	s.Require().NoError(err)
	s.NoError(f.Close())
}

func (s *SuiteDotHG) TestForcedStoreOption() {
	fs := s.EmptyFS()
	s.Require().NoError(util.WriteFile(fs, "store/00manifest.i", []byte("m"), 0o644))

	store := true
	dir := NewWithOptions(fs, Options{Store: &store})
	f, err := dir.Index(ManifestName)
	s.Require().NoError(err)
	s.NoError(f.Close())
}

func (s *SuiteDotHG) TestFilelogWithFncache() {
	fs := s.EmptyFS()
	s.Require().NoError(util.WriteFile(fs, "requires", []byte("revlogv1\nstore\nfncache\ndotencode\n"), 0o644))
	s.Require().NoError(util.WriteFile(fs, "store/data/~2ehgtags.i", []byte("tags"), 0o644))
	s.Require().NoError(util.WriteFile(fs, "store/data/au~78.txt.i", []byte("aux"), 0o644))
	s.Require().NoError(util.WriteFile(fs, "store/00changelog.i", []byte("cl"), 0o644))

	dir := New(fs)
	for name, want := range map[string]string{
		FilelogName(".hgtags"): "tags",
		FilelogName("aux.txt"): "aux",
		ChangelogName:          "cl",
	} {
		f, err := dir.Index(name)
		s.Require().NoError(err, name)
		content, err := io.ReadAll(f)
		s.NoError(err)
		s.Equal(want, string(content))
		s.NoError(f.Close())
	}
}

func (s *SuiteDotHG) TestFilelogWithFncacheWithoutDotencode() {
	fs := s.EmptyFS()
	s.Require().NoError(util.WriteFile(fs, "requires", []byte("store\nfncache\n"), 0o644))
	s.Require().NoError(util.WriteFile(fs, "store/data/.hgtags.i", []byte("tags"), 0o644))

	f, err := New(fs).Index(FilelogName(".hgtags"))
	s.Require().NoError(err)
	s.NoError(f.Close())
}

func (s *SuiteDotHG) TestForcedStoreOffIgnoresRequires() {
	fs := s.EmptyFS()
	s.Require().NoError(util.WriteFile(fs, "requires", []byte("store\n"), 0o644))
	s.Require().NoError(util.WriteFile(fs, "00changelog.i", []byte("flat"), 0o644))

	store := false
	f, err := NewWithOptions(fs, Options{Store: &store}).Index(ChangelogName)
	s.Require().NoError(err)
	s.NoError(f.Close())
}

func (s *SuiteDotHG) TestRevlogNotFound() {
	_, err := New(s.EmptyFS()).Index(ChangelogName)
	s.ErrorIs(err, ErrRevlogNotFound)

	_, err = New(s.EmptyFS()).Data(FilelogName("README"))
	s.ErrorIs(err, ErrRevlogNotFound)
}

func (s *SuiteDotHG) TestFilelogWithStore() {
	fs := s.EmptyFS()
	s.Require().NoError(util.WriteFile(fs, "requires", []byte("store\n"), 0o644))
	s.Require().NoError(util.WriteFile(fs, "store/data/_r_e_a_d_m_e.i", []byte("i"), 0o644))

	f, err := New(fs).Index(FilelogName("README"))
	s.Require().NoError(err)
	s.NoError(f.Close())
}

func (s *SuiteDotHG) TestEncodeName() {
	tests := []struct {
		in, out string
	}{
		{"00changelog.i", "00changelog.i"},
		{"data/README.i", "data/_r_e_a_d_m_e.i"},
		{"data/my_file.txt.i", "data/my__file.txt.i"},
		{"data/a:b?.i", "data/a~3ab~3f.i"},
		{"data/x.i/y.i", "data/x.i.hg/y.i"},
		{"data/.hg/hgrc.i", "data/.hg.hg/hgrc.i"},
		{"data/tab\there.d", "data/tab~09here.d"},
		{"data/tilde~.i", "data/tilde~7e.i"},
	}

	for _, tc := range tests {
		s.Equal(tc.out, EncodeName(tc.in), tc.in)
	}
}

func (s *SuiteDotHG) TestHybridEncodeName() {
	tests := []struct {
		in, out   string
		dotencode bool
	}{
		{"00changelog.i", "00changelog.i", true},
		{"data/.hgtags.i", "data/~2ehgtags.i", true},
		{"data/.hgtags.i", "data/.hgtags.i", false},
		{"data/ lead.i", "data/~20lead.i", true},
		{"data/aux.txt.i", "data/au~78.txt.i", true},
		{"data/con.i", "data/co~6e.i", false},
		{"data/prn/nul.i", "data/pr~6e/nu~6c.i", true},
		{"data/com1.i", "data/co~6d1.i", true},
		{"data/lpt9/x.i", "data/lp~749/x.i", true},
		{"data/com0.i", "data/com0.i", true},
		{"data/auxiliary.i", "data/auxiliary.i", true},
		{"data/AUX.i", "data/_a_u_x.i", true},
		{"data/dir./f.i", "data/dir~2e/f.i", true},
		{"data/dir /f.i", "data/dir~20/f.i", true},
		{"data/x.i/y.i", "data/x.i.hg/y.i", true},
	}

	for _, tc := range tests {
		s.Equal(tc.out, HybridEncodeName(tc.in, tc.dotencode), tc.in)
	}
}

func (s *SuiteDotHG) TestHybridEncodeNameHashed() {
	name := "data/" + strings.Repeat("Directory/", 12) + strings.Repeat("f", 100) + ".txt.i"
	out := HybridEncodeName(name, true)

	s.True(strings.HasPrefix(out, "dh/director/director/"), out)
	s.True(strings.HasSuffix(out, ".i"), out)
	s.LessOrEqual(len(out), maxStorePathLen)

	h := sha1cd.New()
	h.Write([]byte(name))
	s.Contains(out, hex.EncodeToString(h.Sum(nil)))

	dirs := strings.Split(strings.TrimPrefix(out, "dh/"), "/")
	s.Len(dirs, 8, out)
}
