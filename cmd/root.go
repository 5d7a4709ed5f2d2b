package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"geofix/internal"
	"geofix/pkg/graceful"
)

// Version is overridden from the embedded VERSION file or -ldflags
var Version = "dev"

var (
	cfgFile   string
	debugFlag bool

	conf   *internal.Config
	logger *internal.Logger
)

var (
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed)
	okColor   = color.New(color.FgGreen)
)

var rootCmd = &cobra.Command{
	Use:           "geofix",
	Short:         "Geotagged photo fixtures for the simulator",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := internal.LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		l, err := internal.NewLogger(c.LogFile, debugFlag)
		if err != nil {
			return err
		}
		conf, logger = c, l
		logger.Debug("command started", "command", cmd.CommandPath(), "args", args, "version", Version)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Close()
		}
	},
}

// ApplyVersion pushes Version into the cobra --version flag
func ApplyVersion() {
	rootCmd.Version = Version
}

func Execute() error {
	ctx, cancel := graceful.Context(context.Background(), func(sig os.Signal) {
		warnColor.Fprintf(os.Stderr, "\nReceived %s, stopping...\n", sig)
	})
	defer cancel()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		errColor.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default <user config dir>/geofix/geofix.toml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Debug entries in the log file")
	ApplyVersion()
}

// printWarn writes a yellow warning line
func printWarn(cmd *cobra.Command, format string, args ...interface{}) {
	warnColor.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
}

// printProcessError prints a categorized error with its suggestion
func printProcessError(cmd *cobra.Command, procErr *internal.ProcessError) {
	out := cmd.OutOrStdout()
	errColor.Fprintf(out, "  ✗ %s: %v\n", procErr.FilePath, procErr.OriginalErr)
	if procErr.Suggestion != "" {
		fmt.Fprintf(out, "    💡 %s\n", procErr.Suggestion)
	}
}
