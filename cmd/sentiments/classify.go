package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AlexAdowin/Analyse-sentiments/internal/config"
	"github.com/AlexAdowin/Analyse-sentiments/internal/lexicon"
	"github.com/AlexAdowin/Analyse-sentiments/internal/logging"
	"github.com/AlexAdowin/Analyse-sentiments/internal/polarity"
	"github.com/AlexAdowin/Analyse-sentiments/internal/sentiment"
)

type classifyFlags struct {
	positive float64
	negative float64
	lexicon  string
	oracle   string
	explain  bool
}

func newClassifyCmd() *cobra.Command {
	f := &classifyFlags{}

	cmd := &cobra.Command{
		Use:   "classify <text...>",
		Short: "Classify a single review given on the command line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return exitError(3, "failed to load configuration: %v", err)
			}
			flags := cmd.Flags()
			if flags.Changed("positive-threshold") {
				cfg.PositiveThreshold = f.positive
			}
			if flags.Changed("negative-threshold") {
				cfg.NegativeThreshold = f.negative
			}
			if flags.Changed("lexicon") {
				cfg.Lexicon = f.lexicon
			}
			if flags.Changed("oracle") {
				cfg.Oracle = f.oracle
			}
			return runClassify(strings.Join(args, " "), cfg, f, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&f.positive, "positive-threshold", 0.1, "Scores at or above this are positive (env POSITIVE_SEUIL)")
	flags.Float64Var(&f.negative, "negative-threshold", -0.1, "Scores at or below this are negative (env NEGATIVE_SEUIL)")
	flags.StringVar(&f.lexicon, "lexicon", lexicon.Default, "Builtin lexicon name or YAML file (env LEXICON)")
	flags.StringVar(&f.oracle, "oracle", "vader", "External polarity oracle: vader or none (env POLARITY_ORACLE)")
	flags.BoolVar(&f.explain, "explain", false, "Print the intermediate scores as JSON")

	return cmd
}

func runClassify(text string, cfg *config.Config, f *classifyFlags, stdout, stderr io.Writer) error {
	lex, err := lexicon.Resolve(cfg.Lexicon)
	if err != nil {
		return exitError(3, "failed to load lexicon: %v", err)
	}
	oracle, err := polarity.Resolve(cfg.Oracle)
	if err != nil {
		return exitError(3, "failed to resolve polarity oracle: %v", err)
	}
	logger := logging.New(stderr, cfg.LogLevel, cfg.LogFormat)
	analyzer, err := sentiment.New(cfg.Thresholds(), lex, oracle, sentiment.WithLogger(logger))
	if err != nil {
		return exitError(3, "invalid configuration: %v", err)
	}

	an := analyzer.Analyze(text)
	if !f.explain {
		fmt.Fprintf(stdout, "%s %.3f\n", an.Result.Label, an.Result.Score)
		return nil
	}

	data, err := json.MarshalIndent(an, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(stdout, string(data))
	return nil
}
