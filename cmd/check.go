package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lex-fmt/core-sub004/check"
	"github.com/lex-fmt/core-sub004/formatter"
	"github.com/lex-fmt/core-sub004/internal"
	tt "github.com/lex-fmt/core-sub004/internal/types"
)

type checkOptions struct {
	ignoreRules string
	ignorePaths string
	jsonOutput  bool
	short       bool
	outPath     string
	failOn      string
}

func newCheckCmd(a *app) *cobra.Command {
	o := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check files and directories for structural issues",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failOn, err := tt.ParseSeverity(o.failOn)
			if err != nil {
				return err
			}

			parent := cmd.Context()
			if parent == nil {
				parent = context.Background()
			}
			ctx, cancel := context.WithTimeout(parent, a.timeout)
			defer cancel()

			engine, err := check.New(a.configPath(), a.logger)
			if err != nil {
				return fmt.Errorf("failed to initialize check engine: %w", err)
			}
			for _, rule := range splitList(o.ignoreRules) {
				engine.IgnoreRule(rule)
			}
			for _, path := range splitList(o.ignorePaths) {
				engine.IgnorePath(path)
			}

			issues, err := check.ProcessFiles(ctx, a.logger, engine, args, check.ProcessFile)
			if err != nil {
				return err
			}

			report := check.NewReport(issues)
			a.logger.Info("check finished",
				zap.String("run_id", report.RunID),
				zap.Int("files", len(report.Issues)),
				zap.Int("issues", report.Total))

			if err := printReport(cmd.OutOrStdout(), a.logger, report, o); err != nil {
				return err
			}
			if fails(report, failOn) {
				return ErrIssuesFound
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&o.ignoreRules, "ignore", "", "Comma-separated list of rules or namespaces to ignore")
	flags.StringVar(&o.ignorePaths, "ignore-paths", "", "Comma-separated list of paths or globs to ignore")
	flags.BoolVar(&o.jsonOutput, "json", false, "Output the report as JSON")
	flags.BoolVar(&o.short, "short", false, "Print one line per issue")
	flags.StringVarP(&o.outPath, "output", "o", "", "Output path (when using JSON)")
	flags.StringVar(&o.failOn, "fail-on", "warning", "Lowest severity that makes the command fail (error, warning, info, off)")
	return cmd
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// fails reports whether report holds an issue at least as severe as
// threshold. A threshold of off never fails.
func fails(report *check.Report, threshold tt.Severity) bool {
	if threshold == tt.SeverityOff {
		return false
	}
	for severity, n := range report.Count() {
		if n > 0 && severity <= threshold {
			return true
		}
	}
	return false
}

func printReport(out io.Writer, logger *zap.Logger, report *check.Report, o *checkOptions) error {
	if o.jsonOutput {
		d, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("error marshalling report to JSON: %w", err)
		}
		if o.outPath == "" {
			_, err = fmt.Fprintln(out, string(d))
			return err
		}
		return os.WriteFile(o.outPath, d, 0o644)
	}

	for _, filename := range report.Files() {
		fileIssues := report.Issues[filename]
		if o.short {
			fmt.Fprint(out, formatter.GenerateShortIssue(fileIssues))
			continue
		}
		printFileIssues(out, logger, filename, fileIssues)
	}
	printSummary(out, report)
	return nil
}

func printFileIssues(out io.Writer, logger *zap.Logger, filename string, issues []tt.Issue) {
	sourceCode, err := internal.ReadSourceCode(filename)
	if err != nil {
		logger.Error("Error reading source file", zap.String("file", filename), zap.Error(err))
		fmt.Fprint(out, formatter.GenerateShortIssue(issues))
		return
	}
	fmt.Fprint(out, formatter.GenerateFormattedIssue(issues, sourceCode))
}

func printSummary(out io.Writer, report *check.Report) {
	if report.Total == 0 {
		color.New(color.FgGreen).Fprintln(out, "no issues found")
		return
	}
	counts := report.Count()
	color.New(color.Bold).Fprintf(out, "%d issue(s): %d error(s), %d warning(s), %d info\n",
		report.Total,
		counts[tt.SeverityError],
		counts[tt.SeverityWarning],
		counts[tt.SeverityInfo])
}
