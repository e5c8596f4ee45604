// Package dothg implements access to the files of a .hg directory.
package dothg

import (
	"bufio"
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/go-git/go-billy/v5"

	"github.com/go-hg/go-hg/utils/ioutil"
	"github.com/go-hg/go-hg/utils/trace"
)

const (
	requiresPath = "requires"
	storePath    = "store"
	dataPath     = "data"

	indexSuffix = ".i"
	dataSuffix  = ".d"

	// ChangelogName is the name of the changelog revlog.
	ChangelogName = "00changelog"
	// ManifestName is the name of the manifest revlog.
	ManifestName = "00manifest"

	// RequireStore is the requirement of repositories keeping their
	// revlogs under the store directory with encoded file names.
	RequireStore = "store"
	// RequireFncache selects the hybrid encoding of store file names.
	RequireFncache = "fncache"
	// RequireDotencode escapes a leading dot or space of fncache names.
	RequireDotencode = "dotencode"
)

var (
	// ErrRevlogNotFound is returned when the index file of a revlog does
	// not exist.
	ErrRevlogNotFound = errors.New("revlog not found")
)

// Options holds configuration for the storage.
type Options struct {
	// Store forces the layout of the repository. When nil, it is detected
	// from the requires file.
	Store *bool
}

// The DotHG type represents a local .hg directory.
type DotHG struct {
	options Options
	fs      billy.Filesystem

	once      sync.Once
	store     bool
	fncache   bool
	dotencode bool
	storeErr  error
}

// New returns a DotHG value ready to be used. The fs argument must be the
// .hg directory of a repository.
func New(fs billy.Filesystem) *DotHG {
	return NewWithOptions(fs, Options{})
}

// NewWithOptions returns a new DotHG configured with the given options.
func NewWithOptions(fs billy.Filesystem, o Options) *DotHG {
	return &DotHG{fs: fs, options: o}
}

// Fs returns the underlying filesystem of the .hg directory.
func (d *DotHG) Fs() billy.Filesystem {
	return d.fs
}

// Requires returns the requirements listed in the requires file, in file
// order. A missing file means no requirements.
func (d *DotHG) Requires() (reqs []string, err error) {
	f, err := d.fs.Open(requiresPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, err
	}
	defer ioutil.CheckClose(f, &err)

	s := bufio.NewScanner(f)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line != "" {
			reqs = append(reqs, line)
		}
	}

	return reqs, s.Err()
}

// HasStore reports whether revlogs live under the store directory.
func (d *DotHG) HasStore() (bool, error) {
	d.loadRequires()
	return d.store, d.storeErr
}

func (d *DotHG) loadRequires() {
	d.once.Do(func() {
		if d.options.Store != nil && !*d.options.Store {
			return
		}

		var reqs []string
		reqs, d.storeErr = d.Requires()
		for _, r := range reqs {
			switch r {
			case RequireStore:
				d.store = true
			case RequireFncache:
				d.fncache = true
			case RequireDotencode:
				d.dotencode = true
			}
		}

		if d.options.Store != nil {
			d.store = true
		}

		trace.Storage.Printf("dothg: requires=%v store=%t fncache=%t dotencode=%t",
			reqs, d.store, d.fncache, d.dotencode)
	})
}

// Index opens the index file of the revlog name.
func (d *DotHG) Index(name string) (billy.File, error) {
	return d.open(name, indexSuffix)
}

// Data opens the data file of the revlog name.
func (d *DotHG) Data(name string) (billy.File, error) {
	return d.open(name, dataSuffix)
}

func (d *DotHG) open(name, suffix string) (billy.File, error) {
	path, err := d.revlogPath(name, suffix)
	if err != nil {
		return nil, err
	}

	f, err := d.fs.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrRevlogNotFound
		}

		return nil, err
	}

	trace.Storage.Printf("dothg: opened %s", path)
	return f, nil
}

func (d *DotHG) revlogPath(name, suffix string) (string, error) {
	store, err := d.HasStore()
	if err != nil {
		return "", err
	}

	if !store {
		return name + suffix, nil
	}

	if d.fncache {
		return d.fs.Join(storePath, HybridEncodeName(name+suffix, d.dotencode)), nil
	}

	return d.fs.Join(storePath, EncodeName(name+suffix)), nil
}

// FilelogName returns the revlog name of the history of the tracked file
// path, a slash separated path relative to the repository root.
func FilelogName(path string) string {
	return dataPath + "/" + path
}
