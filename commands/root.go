/*
Package commands provides the cobra command tree of the cooloffd binary.

Every command opens the persistent ledger found in the home directory, runs
a single operation and, if the state changed, commits a new version before
closing the store.
*/
package commands

import (
	"io"
	"os"
	"path/filepath"

	"github.com/iov-one/cooloff/errors"
	"github.com/spf13/cobra"
)

const (
	flagHome     = "home"
	flagFrom     = "from"
	flagTime     = "time"
	flagHeight   = "height"
	flagLogLevel = "log_level"
	flagDebug    = "debug"
)

// config is shared by all commands and filled by the persistent flags.
type config struct {
	home string
	from string
	time int64
	// timeSet is false when --time was not given and the current time
	// must be used.
	timeSet  bool
	height   int64
	logLevel string

	out  io.Writer
	logs io.Writer
}

// RootCmd returns the cooloffd command. Command results are written to out,
// logs to logs.
func RootCmd(out, logs io.Writer) *cobra.Command {
	c := &config{out: out, logs: logs}
	root := &cobra.Command{
		Use:          "cooloffd",
		Short:        "Time-boxed escrow ledger",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			c.timeSet = cmd.Flags().Changed(flagTime)
		},
	}
	root.SetOutput(out)

	fl := root.PersistentFlags()
	fl.StringVar(&c.home, flagHome, defaultHome(), "directory to store files under")
	fl.StringVar(&c.from, flagFrom, "", "name of the signer of a transaction")
	fl.Int64Var(&c.time, flagTime, 0, "unix time of the block, current time if not set")
	fl.Int64Var(&c.height, flagHeight, 0, "height of the block, next version if not set")
	fl.StringVar(&c.logLevel, flagLogLevel, "info", "log level: debug, info, error or none")
	fl.Bool(flagDebug, false, "print full errors, including internal ones")

	root.AddCommand(
		InitCmd(c),
		CreateCmd(c),
		ReleaseCmd(c),
		ReturnCmd(c),
		ShowCmd(c),
		ListCmd(c),
		StatusCmd(c),
		EventsCmd(c),
		BalanceCmd(c),
		AddressCmd(c),
	)
	return root
}

// ErrorLog returns the message of an error returned by cmd, as it should be
// shown to the user. Internal errors are redacted unless --debug was given.
func ErrorLog(cmd *cobra.Command, err error) string {
	debug, _ := cmd.PersistentFlags().GetBool(flagDebug)
	_, log := errors.Info(err, debug)
	return log
}

func defaultHome() string {
	return filepath.Join(os.ExpandEnv("$HOME"), ".cooloffd")
}
