package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/AlexAdowin/Analyse-sentiments/internal/lexicon"
)

func newLexiconCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lexicon",
		Short: "Inspect the keyword lexicons",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the builtin lexicons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLexiconList(cmd.OutOrStdout())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "check <lexicon-file>",
		Short: "Validate a lexicon YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLexiconCheck(args[0], cmd.OutOrStdout())
		},
	})
	return cmd
}

func runLexiconList(w io.Writer) error {
	names, err := lexicon.List()
	if err != nil {
		return fmt.Errorf("failed to list lexicons: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVERSION\tLANGUAGE\tPOSITIVE\tNEGATIVE\tINTENSIFIERS\tNEGATIONS\tDELIVERY")
	for _, name := range names {
		lex, err := lexicon.LoadBuiltin(name)
		if err != nil {
			return exitError(1, "builtin lexicon %s is invalid: %v", name, err)
		}
		s := lex.Stats()
		fmt.Fprintf(tw, "%s\t%d\t%s\t%d\t%d\t%d\t%d\t%d\n",
			lex.Name(), lex.Version(), lex.Language(),
			s.Positive, s.Negative, s.Intensifiers, s.Negations, s.DeliveryIssues)
	}
	return tw.Flush()
}

func runLexiconCheck(path string, w io.Writer) error {
	lex, err := lexicon.Load(path)
	if err != nil {
		return exitError(3, "invalid lexicon: %v", err)
	}
	s := lex.Stats()
	fmt.Fprintf(w, "%s: ok (%d positive, %d negative, %d intensifiers, %d negations, %d delivery issues)\n",
		lex.Label(), s.Positive, s.Negative, s.Intensifiers, s.Negations, s.DeliveryIssues)
	return nil
}
