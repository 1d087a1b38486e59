// Package cmd holds graphctl's cobra command tree.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/graphcore/graphlog"
)

var (
	cfgFile string
	verbose bool
	logger  *graphlog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "graphctl",
	Short: "Local exercise CLI for the graphcore property-graph library",
	Long: `graphctl loads a small graph fixture into a store.Store, runs a
traversal over it, and prints summary statistics. It exists purely for
local exploration of the library — it is not a server and does not
implement the host command-dispatch protocol.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := zapcore.InfoLevel
		if verbose {
			level = zapcore.DebugLevel
		}
		l, err := graphlog.New(level)
		if err != nil {
			return fmt.Errorf("graphctl: %w", err)
		}
		logger = l
		return nil
	},
}

// Execute runs the root command, exiting the process with status 1 on
// failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML, layered over GRAPHCORE_ env vars)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
