package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	hg "github.com/go-hg/go-hg"
	"github.com/go-hg/go-hg/plumbing"
	"github.com/go-hg/go-hg/plumbing/format/changeset"
)

func newLogCommand() *cobra.Command {
	var repo string
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Print the changesets of a repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			useMmap, _ := cmd.Flags().GetBool(mmapFlag)
			r, err := hg.PlainOpenWithOptions(repo, &hg.PlainOpenOptions{DetectDotHG: true, UseMmap: useMmap})
			if err != nil {
				return err
			}

			return runLog(cmd.OutOrStdout(), r, limit)
		},
	}

	cmd.Flags().StringVarP(&repo, "repo", "R", ".", "repository root")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "print at most this many changesets, newest first")
	return cmd
}

func runLog(w io.Writer, r *hg.Repository, limit int) error {
	rl, err := r.Changelog()
	if err != nil {
		return err
	}

	printed := 0
	for i := rl.Len() - 1; i >= 0; i-- {
		if limit > 0 && printed == limit {
			break
		}

		rev := plumbing.Revision(i)
		rec, err := rl.Record(rev)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "changeset: %d:%s\n", i, rec.ShortID())

		c, err := r.Changeset(rev)
		if err != nil {
			fmt.Fprintf(w, "error: %s\n\n", err)
			printed++
			continue
		}

		if b := c.Branch(); b != changeset.DefaultBranch {
			fmt.Fprintf(w, "Branch: %s\n", b)
		}

		fmt.Fprintln(w, c)
		printed++
	}

	return nil
}
