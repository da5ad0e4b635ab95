package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lex-fmt/core-sub004/lexer"
)

func newTokensCmd(a *app) *cobra.Command {
	var normalized bool

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			source := string(content)

			tokens := lexer.Tokenize(source)
			if normalized {
				tokens = lexer.Normalize(tokens)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, tok := range tokens {
				fmt.Fprintf(w, "%s\t%s\t%q\n", tok.Kind, tok.Span, tok.Text(source))
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&normalized, "normalized", false, "Print the stream after indentation normalization")
	return cmd
}
