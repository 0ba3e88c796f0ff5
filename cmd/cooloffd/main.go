package main

import (
	"fmt"
	"os"

	"github.com/iov-one/cooloff/commands"
	"github.com/iov-one/cooloff/errors"
)

func main() {
	cmd := commands.RootCmd(os.Stdout, os.Stderr)
	cmd.SilenceErrors = true
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", commands.ErrorLog(cmd, err))
		os.Exit(exitCode(errors.Code(err)))
	}
}

// exitCode maps an error code to a process exit status. Codes that do not
// fit are reported as a generic failure.
func exitCode(code uint32) int {
	if code == 0 || code > 125 {
		return 1
	}
	return int(code)
}
