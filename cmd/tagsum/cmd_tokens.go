package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Neumenon/tagsum/input"
)

func newTokensCmd(a *app) *cobra.Command {
	var lenient bool

	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the token stream of an input",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			text, err := input.LoadText(path)
			if err != nil {
				return err
			}

			ev, err := a.evaluator("", lenient)
			if err != nil {
				return err
			}
			tokens, err := ev.Scanner(text).Tokenize()
			out := cmd.OutOrStdout()
			for _, tok := range tokens {
				fmt.Fprintf(out, "%s\t%s\n", tok.Pos(), tok)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&lenient, "lenient", false, "Skip characters outside the scanner grammar")
	return cmd
}
