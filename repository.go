package hg

import (
	"errors"

	"github.com/go-git/go-billy/v5"

	"github.com/go-hg/go-hg/internal/repository"
	"github.com/go-hg/go-hg/plumbing"
	"github.com/go-hg/go-hg/plumbing/format/changeset"
	"github.com/go-hg/go-hg/plumbing/format/revlog"
	"github.com/go-hg/go-hg/storage/filesystem"
	"github.com/go-hg/go-hg/storage/filesystem/dothg"
)

var (
	// ErrRepositoryNotExists is returned when no .hg directory is found.
	ErrRepositoryNotExists = repository.ErrRepositoryNotExists
	// ErrStop stops an iteration started by ForEach without error.
	ErrStop = errors.New("stop iter")
)

// Repository represents a Mercurial repository.
type Repository struct {
	Storer *filesystem.Storage

	wt billy.Filesystem
}

// Open returns a Repository reading the .hg directory fs.
func Open(fs billy.Filesystem) *Repository {
	o := &PlainOpenOptions{}
	return &Repository{Storer: filesystem.NewStorageWithOptions(fs, o.storage())}
}

// PlainOpen opens the repository at path, the directory holding .hg.
func PlainOpen(path string) (*Repository, error) {
	return PlainOpenWithOptions(path, &PlainOpenOptions{})
}

// PlainOpenWithOptions opens a repository with the given options.
func PlainOpenWithOptions(path string, o *PlainOpenOptions) (*Repository, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	s, wt, err := repository.PlainOpen(path, o.DetectDotHG, o.storage())
	if err != nil {
		return nil, err
	}

	return &Repository{Storer: s, wt: wt}, nil
}

// Worktree returns the directory holding the .hg directory, nil for
// repositories opened with Open.
func (r *Repository) Worktree() billy.Filesystem {
	return r.wt
}

// Changelog returns the index of the changelog.
func (r *Repository) Changelog() (*revlog.Revlog, error) {
	return r.Storer.Changelog()
}

// Manifest returns the index of the manifest.
func (r *Repository) Manifest() (*revlog.Revlog, error) {
	return r.Storer.Revlog(dothg.ManifestName)
}

// Filelog returns the index of the history of the tracked file path.
func (r *Repository) Filelog(path string) (*revlog.Revlog, error) {
	return r.Storer.Filelog(path)
}

// Changeset returns the changeset of changelog revision rev.
func (r *Repository) Changeset(rev plumbing.Revision) (*changeset.Changeset, error) {
	return r.Storer.Changeset(rev)
}

// Changesets returns an iterator over every changeset, in revision order.
func (r *Repository) Changesets() (*ChangesetIter, error) {
	rl, err := r.Changelog()
	if err != nil {
		return nil, err
	}

	return &ChangesetIter{s: r.Storer, n: rl.Len()}, nil
}
