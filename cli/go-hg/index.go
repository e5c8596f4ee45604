package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/go-hg/go-hg/plumbing"
	"github.com/go-hg/go-hg/plumbing/format/changeset"
	"github.com/go-hg/go-hg/storage/filesystem"
)

func newIndexCommand() *cobra.Command {
	var decode bool

	cmd := &cobra.Command{
		Use:   "index <file.i>",
		Short: "Print the records of a revlog index",
		Long: `Print the header and the records of a revlog index file. Payloads
are decoded as changesets when --changesets is set and the data file
can be read.

Example:
  go-hg index .hg/store/00changelog.i`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			useMmap, _ := cmd.Flags().GetBool(mmapFlag)
			return runIndex(cmd.OutOrStdout(), args[0], decode, useMmap)
		},
	}

	cmd.Flags().BoolVarP(&decode, "changesets", "c", true, "decode payloads as changesets")
	return cmd
}

func runIndex(w io.Writer, path string, decode, useMmap bool) error {
	dir, file := filepath.Split(path)
	name := strings.TrimSuffix(file, ".i")
	dir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	store := false
	s := filesystem.NewStorageWithOptions(osfs.New(dir, osfs.WithBoundOS()), filesystem.Options{Store: &store, UseMmap: useMmap})

	rl, err := s.Revlog(name)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Revlog %s, version = %d, flags = 0x%x\n", path, uint16(rl.Version), uint32(rl.Flags))
	for i, rec := range rl.Records {
		fmt.Fprintf(w, "Entry %d: %s, offset: %d, length: %d\n",
			rec.LinkRevision(), rec.ShortID(), rec.Offset(), rec.RawLength())

		if !decode {
			continue
		}

		payload, err := s.ReadData(name, rl, plumbing.Revision(i))
		if errors.Is(err, filesystem.ErrRevlogNotFound) {
			decode = false
			continue
		}
		if err != nil {
			return err
		}

		c, err := changeset.Decode(payload)
		if err != nil {
			fmt.Fprintf(w, "error: %s\n", err)
			continue
		}

		fmt.Fprintln(w, c)
	}

	return nil
}
