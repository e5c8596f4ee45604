package main

import (
	"fmt"
	"os"
)

const (
	bin = "go-hg"

	fatalApplicationExitCode = 128
	generalErrorExitCode     = 1
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ERR:", err)
		if err == errVerifyFailed {
			os.Exit(generalErrorExitCode)
		}

		os.Exit(fatalApplicationExitCode)
	}
}
