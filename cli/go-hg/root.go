package main

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/go-hg/go-hg/utils/trace"
)

const (
	traceEnv = "GOHG_TRACE"
	mmapFlag = "mmap"
)

func newRootCommand() *cobra.Command {
	var enableTrace bool

	root := &cobra.Command{
		Use:   bin,
		Short: "Read Mercurial repositories",
		Long: `go-hg decodes the revlogs of a Mercurial repository: the index
records of any revlog and the changesets of the changelog.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if v, err := strconv.ParseBool(os.Getenv(traceEnv)); err == nil && v {
				enableTrace = true
			}

			if enableTrace {
				trace.SetTarget(trace.All)
			}
		},
	}

	root.PersistentFlags().Bool(mmapFlag, false, "read revlog files through memory mappings")
	root.PersistentFlags().BoolVar(&enableTrace, "trace", false, "trace decoding to stderr, also enabled by "+traceEnv+"=true")

	root.AddCommand(
		newIndexCommand(),
		newLogCommand(),
		newVerifyCommand(),
		newVersionCommand(),
	)

	return root
}
