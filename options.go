package hg

import (
	"github.com/go-hg/go-hg/storage/filesystem"
)

// PlainOpenOptions describes how opening a plain repository should be
// performed.
type PlainOpenOptions struct {
	// DetectDotHG defines whether parent directories should be walked
	// until a .hg directory is found.
	DetectDotHG bool
	// MaxCachedChangesets is the number of decoded changesets kept in
	// memory. Zero means filesystem.DefaultMaxCachedChangesets, a negative
	// value disables the cache.
	MaxCachedChangesets int
	// Store forces the layout of the repository instead of reading it from
	// the requires file.
	Store *bool
	// UseMmap reads revlog files through memory mappings when supported.
	UseMmap bool
}

// Validate validates the fields and sets the default values.
func (o *PlainOpenOptions) Validate() error {
	if o.MaxCachedChangesets == 0 {
		o.MaxCachedChangesets = filesystem.DefaultMaxCachedChangesets
	}

	return nil
}

// storage returns the storage options, applying the same defaults as
// Validate.
func (o *PlainOpenOptions) storage() filesystem.Options {
	n := o.MaxCachedChangesets
	switch {
	case n == 0:
		n = filesystem.DefaultMaxCachedChangesets
	case n < 0:
		n = 0
	}

	return filesystem.Options{MaxCachedChangesets: n, Store: o.Store, UseMmap: o.UseMmap}
}
