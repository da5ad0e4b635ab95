package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lex-fmt/core-sub004/check"
	tt "github.com/lex-fmt/core-sub004/internal/types"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dirs...]",
		Short: "Re-check files whenever they are written",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}

			engine, err := check.New(a.configPath(), a.logger)
			if err != nil {
				return fmt.Errorf("failed to initialize check engine: %w", err)
			}

			out := cmd.OutOrStdout()
			engine.OnIssues(func(filename string, issues []tt.Issue) {
				if len(issues) == 0 {
					fmt.Fprintf(out, "%s: no issues found\n", filename)
					return
				}
				printFileIssues(out, a.logger, filename, issues)
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := engine.StartWatching(args...); err != nil {
				return err
			}
			fmt.Fprintf(out, "watching %v, press Ctrl+C to stop\n", args)
			<-ctx.Done()
			return engine.StopWatching()
		},
	}
}
