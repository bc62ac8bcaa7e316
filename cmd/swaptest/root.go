package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fd1az/usdt-bridge/internal/logger"
)

// options are the persistent flags shared by every command.
type options struct {
	configPath string
	server     string
	plain      bool
	jsonOut    bool
	verbose    bool
	timeout    time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "swaptest",
		Short: "Exercise the USD to USDT bridge from the command line",
		Long: `swaptest runs bridge operations end to end and prints the confirmed result.

Local mode signs with the configured key (ETH_RPC_URL and ETH_PRIVATE_KEY are
required; ETH_WALLET_ADDRESS is optional and must match the key). With
--server, issue and quote are sent to a running bridge instead.

Examples:
  swaptest swap 10 0x742d35Cc6634C0532925a3b844Bc454e4438f44e
  swaptest swap 10 0x742d35Cc6634C0532925a3b844Bc454e4438f44e --demo
  swaptest issue 25 0x742d35Cc6634C0532925a3b844Bc454e4438f44e
  swaptest quote 100 --server http://localhost:3000
  swaptest watch --server http://localhost:3000`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flags.StringVar(&opts.server, "server", "", "Base URL of a running bridge server")
	flags.BoolVar(&opts.plain, "plain", false, "Print plain text without the progress view")
	flags.BoolVarP(&opts.jsonOut, "json", "j", false, "Print the result as JSON")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log pipeline progress to stderr")
	flags.DurationVar(&opts.timeout, "timeout", 10*time.Minute, "Give up waiting after this long")

	root.AddCommand(
		newSwapCmd(opts),
		newIssueCmd(opts),
		newQuoteCmd(opts),
		newWatchCmd(opts),
	)
	return root
}

func (o *options) logger() *logger.Logger {
	if !o.verbose {
		return logger.New(io.Discard, logger.LevelError, "swaptest", nil)
	}
	return logger.New(os.Stderr, logger.LevelDebug, "swaptest", nil)
}

// interactive reports whether the progress view should run.
func (o *options) interactive() bool {
	return !o.plain && !o.jsonOut
}
