package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lex-fmt/core-sub004/internal"
)

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the rules and their default severities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := internal.NewEngine(nil)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, name := range internal.RuleNames() {
				r, _ := engine.Rule(name)
				fmt.Fprintf(w, "%s\t%s\n", name, r.Severity())
			}
			return w.Flush()
		},
	}
}
