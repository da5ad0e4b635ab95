package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	lex "github.com/lex-fmt/core-sub004"
	"github.com/lex-fmt/core-sub004/ast"
)

var headerStyle = color.New(color.FgCyan, color.Bold)

func newParseCmd(a *app) *cobra.Command {
	var (
		jsonOutput bool
		noAttach   bool
	)

	cmd := &cobra.Command{
		Use:   "parse <files...>",
		Short: "Print the document tree of each file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			trees := make(map[string]*ast.JSONNode, len(args))

			for _, filename := range args {
				content, err := os.ReadFile(filename)
				if err != nil {
					return err
				}
				doc, err := lex.ParseWithOptions(string(content), lex.Options{
					Logger:         a.logger,
					SkipAttachment: noAttach,
				})
				if err != nil {
					return fmt.Errorf("%s: %w", filename, err)
				}

				if jsonOutput {
					trees[filename] = ast.ToJSON(doc)
					continue
				}
				headerStyle.Fprintf(out, "%s\n", filename)
				fmt.Fprint(out, ast.Dump(doc))
			}

			if !jsonOutput {
				return nil
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if len(args) == 1 {
				return enc.Encode(trees[args[0]])
			}
			return enc.Encode(trees)
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the tree as JSON")
	cmd.Flags().BoolVar(&noAttach, "no-attach", false, "Leave annotations where they were written")
	return cmd
}
