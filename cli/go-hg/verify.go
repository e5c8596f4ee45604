package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	hg "github.com/go-hg/go-hg"
	"github.com/go-hg/go-hg/plumbing"
	"github.com/go-hg/go-hg/storage/filesystem"
	"github.com/go-hg/go-hg/storage/filesystem/dothg"
)

var errVerifyFailed = errors.New("verification failed")

func newVerifyCommand() *cobra.Command {
	var repo string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check the nodes of the changelog revisions stored as full texts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			useMmap, _ := cmd.Flags().GetBool(mmapFlag)
			r, err := hg.PlainOpenWithOptions(repo, &hg.PlainOpenOptions{DetectDotHG: true, UseMmap: useMmap})
			if err != nil {
				return err
			}

			return runVerify(cmd.OutOrStdout(), r)
		},
	}

	cmd.Flags().StringVarP(&repo, "repo", "R", ".", "repository root")
	return cmd
}

func runVerify(w io.Writer, r *hg.Repository) error {
	rl, err := r.Changelog()
	if err != nil {
		return err
	}

	var verified, skipped, failed int
	for i := 0; i < rl.Len(); i++ {
		err := r.Storer.VerifyNode(dothg.ChangelogName, rl, plumbing.Revision(i))
		switch {
		case err == nil:
			verified++
		case errors.Is(err, filesystem.ErrDeltaRevision):
			skipped++
		default:
			failed++
			fmt.Fprintf(w, "error: %s\n", err)
		}
	}

	fmt.Fprintf(w, "checked %d changesets: %d verified, %d deltas skipped, %d failed\n",
		rl.Len(), verified, skipped, failed)

	if failed > 0 {
		return errVerifyFailed
	}

	return nil
}
