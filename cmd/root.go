// Package cmd implements the lex command line.
package cmd

import (
	"errors"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lex-fmt/core-sub004/check"
)

const defaultTimeout = 5 * time.Minute

// ErrIssuesFound is returned by check when issues at or above the
// failure severity were reported.
var ErrIssuesFound = errors.New("issues found")

// app holds the persistent flags shared by every subcommand.
type app struct {
	cfgFile string
	timeout time.Duration
	verbose bool
	noColor bool

	logger *zap.Logger
}

// NewRootCmd builds the lex command tree.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:              "lex [paths...]",
		Short:            "lex - parse and check Lex documents",
		Args:             cobra.ArbitraryArgs,
		TraverseChildren: true,
		SilenceUsage:     true,
		SilenceErrors:    true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.noColor {
				color.NoColor = true
			}
			return a.setupLogger()
		},
	}

	checkCmd := newCheckCmd(a)
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		// lex [path1 path2 ...] behaves like the check subcommand
		return checkCmd.RunE(checkCmd, args)
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "Configuration file (default "+check.DefaultConfigFile+" when present)")
	flags.DurationVar(&a.timeout, "timeout", defaultTimeout, "Give up after this long")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Log debug output")
	flags.BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(newTokensCmd(a))
	rootCmd.AddCommand(newParseCmd(a))
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(newWatchCmd(a))
	rootCmd.AddCommand(newInitCmd(a))
	rootCmd.AddCommand(newRulesCmd())

	return rootCmd
}

func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) setupLogger() error {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if a.verbose {
		config = zap.NewDevelopmentConfig()
	}
	logger, err := config.Build()
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// configPath returns the configuration file to load: the --config flag,
// else the default file when it exists, else none.
func (a *app) configPath() string {
	if a.cfgFile != "" {
		return a.cfgFile
	}
	if _, err := os.Stat(check.DefaultConfigFile); err == nil {
		return check.DefaultConfigFile
	}
	return ""
}
