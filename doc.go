// Package hg is a read-only library for Mercurial repositories. It decodes
// revlogs, the append-only files in which Mercurial keeps every revision of
// the changelog, the manifest and each tracked file, and the changesets
// stored in the changelog. It is written in Go from scratch, without any C
// dependencies.
//
// Only the index-level formats are supported: revisions stored as deltas
// are located and read but never reconstructed.
package hg
