// Package batch classifies every record of a review table.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/AlexAdowin/Analyse-sentiments/internal/logging"
	"github.com/AlexAdowin/Analyse-sentiments/internal/metrics"
	"github.com/AlexAdowin/Analyse-sentiments/internal/reviews"
	"github.com/AlexAdowin/Analyse-sentiments/internal/sentiment"
)

// Columns appended to every row.
const (
	ColumnLabel = "sentiment_final"
	ColumnScore = "polarite"
)

// DefaultWorkers is used when Options.Workers is not positive.
const DefaultWorkers = 4

// ErrMissingField is returned when the table has no column with the
// configured text field.
var ErrMissingField = errors.New("text field not found")

// Analyzer is the part of sentiment.Analyzer the driver needs.
type Analyzer interface {
	Analyze(text string) sentiment.Analysis
}

// Options configures Run.
type Options struct {
	TextField string
	Workers   int
	Logger    *slog.Logger
	Metrics   *metrics.Batch
	Clock     clockwork.Clock
}

// Stats summarizes a run.
type Stats struct {
	Rows     int
	Degraded int
	Elapsed  time.Duration
}

// Run classifies the text field of every row and returns a copy of the
// table with ColumnLabel and ColumnScore set on each row. Row order and all
// other fields are preserved; the input table is not modified.
//
// A missing text field fails before any row is processed. Per-row scoring
// failures are counted in Stats.Degraded and never abort the run.
func Run(ctx context.Context, table *reviews.Table, a Analyzer, opts Options) (*reviews.Table, Stats, error) {
	if opts.TextField == "" || !table.HasColumn(opts.TextField) {
		return nil, Stats{}, fmt.Errorf("batch.Run: %q in %v: %w", opts.TextField, table.Columns, ErrMissingField)
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}

	out := table.Clone()
	out.AddColumn(ColumnLabel)
	out.AddColumn(ColumnScore)

	start := opts.Clock.Now()
	var degraded atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, row := range out.Rows {
		i, row := i, row
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t0 := opts.Clock.Now()
			an := a.Analyze(row.Text(opts.TextField))
			row[ColumnLabel] = an.Result.Label.String()
			row[ColumnScore] = an.Result.Score
			if an.Degraded() {
				degraded.Add(1)
				opts.Logger.Debug("row degraded", "row", i, "error", an.Err)
			}
			opts.Metrics.Observe(an.Result.Label, an.Degraded(), opts.Clock.Since(t0))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Stats{}, fmt.Errorf("batch.Run: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, Stats{}, fmt.Errorf("batch.Run: %w", err)
	}

	stats := Stats{
		Rows:     len(out.Rows),
		Degraded: int(degraded.Load()),
		Elapsed:  opts.Clock.Since(start),
	}
	opts.Logger.Info("batch complete",
		"rows", stats.Rows,
		"degraded", stats.Degraded,
		"workers", opts.Workers,
		"elapsed", stats.Elapsed,
	)
	return out, stats, nil
}
