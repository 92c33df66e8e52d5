package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/AlexAdowin/Analyse-sentiments/internal/batch"
	"github.com/AlexAdowin/Analyse-sentiments/internal/config"
	"github.com/AlexAdowin/Analyse-sentiments/internal/lexicon"
	"github.com/AlexAdowin/Analyse-sentiments/internal/logging"
	"github.com/AlexAdowin/Analyse-sentiments/internal/metrics"
	"github.com/AlexAdowin/Analyse-sentiments/internal/polarity"
	"github.com/AlexAdowin/Analyse-sentiments/internal/redact"
	"github.com/AlexAdowin/Analyse-sentiments/internal/report"
	"github.com/AlexAdowin/Analyse-sentiments/internal/reviews"
	"github.com/AlexAdowin/Analyse-sentiments/internal/sentiment"
)

type analyzeFlags struct {
	textField      string
	positive       float64
	negative       float64
	lexicon        string
	oracle         string
	out            string
	summary        string
	detailsFormat  string
	markdown       string
	workers        int
	redactEnabled  bool
	metricsOut     string
	failOnNegative float64
	verbose        bool
}

func newAnalyzeCmd() *cobra.Command {
	f := &analyzeFlags{}

	cmd := &cobra.Command{
		Use:   "analyze [input-file]",
		Short: "Classify every review of a file and write detailed results and a summary",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return exitError(3, "failed to load configuration: %v", err)
			}
			if len(args) == 1 {
				cfg.InputFile = args[0]
			}
			applyAnalyzeFlags(cmd, cfg, f)
			return runAnalyze(cmd.Context(), cfg, f, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.textField, "text-field", "review_text", "Name of the field holding the review text (env TEXT_COLUMN)")
	flags.Float64Var(&f.positive, "positive-threshold", 0.1, "Scores at or above this are positive (env POSITIVE_SEUIL)")
	flags.Float64Var(&f.negative, "negative-threshold", -0.1, "Scores at or below this are negative (env NEGATIVE_SEUIL)")
	flags.StringVar(&f.lexicon, "lexicon", lexicon.Default, "Builtin lexicon name or YAML file (env LEXICON)")
	flags.StringVar(&f.oracle, "oracle", "vader", "External polarity oracle: vader or none (env POLARITY_ORACLE)")
	flags.StringVar(&f.out, "out", "output/resultats.csv", "Detailed results file (env OUTPUT_CSV)")
	flags.StringVar(&f.summary, "summary", "output/resume.json", "Summary JSON file (env OUTPUT_SUMMARY)")
	flags.StringVar(&f.detailsFormat, "details-format", "csv", "Detailed results format: csv or json")
	flags.StringVar(&f.markdown, "markdown", "", "Also write a Markdown report to this file")
	flags.IntVar(&f.workers, "workers", batch.DefaultWorkers, "Number of parallel workers (env WORKERS)")
	flags.BoolVar(&f.redactEnabled, "redact", false, "Mask e-mails, phone numbers, card numbers and order references in written text")
	flags.StringVar(&f.metricsOut, "metrics-out", "", "Write Prometheus metrics in textfile format")
	flags.Float64Var(&f.failOnNegative, "fail-on-negative", 0, "Exit 2 if the share of negative reviews exceeds this ratio (0 disables)")
	flags.BoolVar(&f.verbose, "verbose", false, "Log debug details to stderr")

	return cmd
}

// applyAnalyzeFlags overrides environment values with explicitly set flags.
func applyAnalyzeFlags(cmd *cobra.Command, cfg *config.Config, f *analyzeFlags) {
	flags := cmd.Flags()
	if flags.Changed("text-field") {
		cfg.TextColumn = f.textField
	}
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
	if flags.Changed("out") {
		cfg.OutputCSV = f.out
	} else if f.detailsFormat == "json" && filepath.Ext(cfg.OutputCSV) == ".csv" {
		cfg.OutputCSV = strings.TrimSuffix(cfg.OutputCSV, ".csv") + ".json"
	}
	if flags.Changed("summary") {
		cfg.OutputSummary = f.summary
	}
	if flags.Changed("workers") {
		cfg.Workers = f.workers
	}
	if f.verbose {
		cfg.LogLevel = "debug"
	}
}

func runAnalyze(ctx context.Context, cfg *config.Config, f *analyzeFlags, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := cfg.Validate(); err != nil {
		return exitError(3, "invalid configuration: %v", err)
	}
	if f.detailsFormat != "csv" && f.detailsFormat != "json" {
		return exitError(3, "unknown details format: %s", f.detailsFormat)
	}

	logger := logging.New(stderr, cfg.LogLevel, cfg.LogFormat)

	lex, err := lexicon.Resolve(cfg.Lexicon)
	if err != nil {
		return exitError(3, "failed to load lexicon: %v", err)
	}
	oracle, err := polarity.Resolve(cfg.Oracle)
	if err != nil {
		return exitError(3, "failed to resolve polarity oracle: %v", err)
	}
	analyzer, err := sentiment.New(cfg.Thresholds(), lex, oracle, sentiment.WithLogger(logger))
	if err != nil {
		return exitError(3, "invalid configuration: %v", err)
	}

	// 1. Load
	fmt.Fprintln(stdout, "Chargement des données...")
	table, err := reviews.Load(cfg.InputFile)
	if err != nil {
		return exitError(3, "failed to load reviews: %v", err)
	}
	fmt.Fprintf(stdout, "%d avis chargés\n", len(table.Rows))
	logger.Debug("input loaded", "file", table.Source, "hash", table.Hash, "columns", table.Columns)

	// 2. Classify
	fmt.Fprintln(stdout, "Analyse en cours...")
	reg := prometheus.NewRegistry()
	analyzed, stats, err := batch.Run(ctx, table, analyzer, batch.Options{
		TextField: cfg.TextColumn,
		Workers:   cfg.Workers,
		Logger:    logger,
		Metrics:   metrics.New(reg),
	})
	if err != nil {
		if errors.Is(err, batch.ErrMissingField) {
			return exitError(3, "%v", err)
		}
		return fmt.Errorf("analysis failed: %w", err)
	}
	fmt.Fprintln(stdout, "Analyse terminée")
	if stats.Degraded > 0 {
		logger.Warn("some reviews could not be scored", "degraded", stats.Degraded, "rows", stats.Rows)
	}

	if f.redactEnabled {
		for _, row := range analyzed.Rows {
			if row[cfg.TextColumn] != nil {
				row[cfg.TextColumn] = redact.Redact(row.Text(cfg.TextColumn))
			}
		}
	}

	// 3. Reports
	fmt.Fprintln(stdout, "Génération des rapports...")
	summary, err := report.Compute(analyzed, report.Options{
		Lexicon:        lex.Name(),
		LexiconVersion: lex.Version(),
		Oracle:         oracle.Name(),
		Thresholds:     analyzer.Config(),
	})
	if err != nil {
		return fmt.Errorf("failed to compute summary: %w", err)
	}
	if errs := report.Validate(summary, analyzed); len(errs) > 0 {
		fmt.Fprintln(stderr, "Summary validation errors:")
		for _, e := range errs {
			fmt.Fprintf(stderr, "  %s\n", e)
		}
		return exitError(1, "summary failed validation")
	}

	switch f.detailsFormat {
	case "json":
		err = report.WriteJSON(analyzed, cfg.OutputCSV)
	default:
		err = report.WriteCSV(analyzed, cfg.OutputCSV)
	}
	if err != nil {
		return fmt.Errorf("failed to write detailed results: %w", err)
	}
	if err := report.WriteSummary(summary, cfg.OutputSummary); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	if f.markdown != "" {
		logger.Debug("writing markdown report", "path", f.markdown)
		if err := os.WriteFile(f.markdown, []byte(report.Markdown(summary)), 0644); err != nil {
			return fmt.Errorf("failed to write markdown report: %w", err)
		}
	}
	if f.metricsOut != "" {
		if err := metrics.WriteTextfile(f.metricsOut, reg); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	fmt.Fprintf(stdout, "Rapports: %s, %s\n", cfg.OutputCSV, cfg.OutputSummary)
	fmt.Fprintln(stdout, "Terminé!")

	// 4. Exit code based on --fail-on-negative
	if f.failOnNegative > 0 {
		if ratio := report.NegativeRatio(summary); ratio > f.failOnNegative {
			return exitError(2, "negative share %.2f exceeds %.2f", ratio, f.failOnNegative)
		}
	}
	return nil
}
