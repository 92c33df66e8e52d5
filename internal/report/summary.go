// Package report computes the aggregate summary of an analyzed review
// table and persists detailed results and summaries.
package report

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"gonum.org/v1/gonum/stat"

	"github.com/AlexAdowin/Analyse-sentiments/internal/batch"
	"github.com/AlexAdowin/Analyse-sentiments/internal/reviews"
	"github.com/AlexAdowin/Analyse-sentiments/internal/sentiment"
)

// LabelStats is the count and share of one label.
type LabelStats struct {
	Count      int     `json:"nombre"`
	Percentage float64 `json:"pourcentage"`
}

// Meta describes how a summary was produced.
type Meta struct {
	RunID             string    `json:"run_id"`
	GeneratedAt       time.Time `json:"generated_at"`
	InputFile         string    `json:"input_file,omitempty"`
	InputHash         string    `json:"input_hash,omitempty"`
	Lexicon           string    `json:"lexicon,omitempty"`
	LexiconVersion    int       `json:"lexicon_version,omitempty"`
	Oracle            string    `json:"oracle,omitempty"`
	PositiveThreshold float64   `json:"positive_threshold"`
	NegativeThreshold float64   `json:"negative_threshold"`
}

// Summary aggregates a labeled table. Statistics only holds labels that
// occur at least once.
type Summary struct {
	TotalReviews   int                   `json:"total_avis_analyses"`
	Statistics     map[string]LabelStats `json:"statistiques"`
	MeanPolarity   float64               `json:"score_moyen_polarite"`
	StdDevPolarity float64               `json:"ecart_type_polarite"`
	Meta           Meta                  `json:"meta"`
}

// Options carries the run metadata that the table itself does not hold.
type Options struct {
	Lexicon        string
	LexiconVersion int
	Oracle         string
	Thresholds     sentiment.Config

	Clock clockwork.Clock
	NewID func() string
}

// Compute builds the summary of a table produced by batch.Run. Every row
// must carry a label; a missing score column yields a mean of 0.
func Compute(table *reviews.Table, opts Options) (*Summary, error) {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	s := &Summary{
		TotalReviews: len(table.Rows),
		Statistics:   make(map[string]LabelStats),
		Meta: Meta{
			RunID:             opts.NewID(),
			GeneratedAt:       opts.Clock.Now().UTC(),
			InputFile:         table.Source,
			InputHash:         table.Hash,
			Lexicon:           opts.Lexicon,
			LexiconVersion:    opts.LexiconVersion,
			Oracle:            opts.Oracle,
			PositiveThreshold: opts.Thresholds.PositiveThreshold,
			NegativeThreshold: opts.Thresholds.NegativeThreshold,
		},
	}

	hasScore := table.HasColumn(batch.ColumnScore)
	scores := make([]float64, 0, len(table.Rows))
	for i, row := range table.Rows {
		label := row.Text(batch.ColumnLabel)
		if label == "" {
			return nil, fmt.Errorf("report.Compute: row %d: missing %s", i, batch.ColumnLabel)
		}
		ls := s.Statistics[label]
		ls.Count++
		s.Statistics[label] = ls

		if hasScore {
			v, err := Score(row)
			if err != nil {
				return nil, fmt.Errorf("report.Compute: row %d: %w", i, err)
			}
			scores = append(scores, v)
		}
	}

	for label, ls := range s.Statistics {
		ls.Percentage = round(float64(ls.Count)/float64(s.TotalReviews)*100, 2)
		s.Statistics[label] = ls
	}

	if len(scores) > 0 {
		mean, std := stat.MeanStdDev(scores, nil)
		s.MeanPolarity = round(mean, 3)
		if len(scores) > 1 {
			s.StdDevPolarity = round(std, 3)
		}
	}
	return s, nil
}

// Score reads the polarity column of an analyzed row.
func Score(row reviews.Row) (float64, error) {
	switch v := row[batch.ColumnScore].(type) {
	case float64:
		return v, nil
	case json.Number:
		return v.Float64()
	case string:
		return strconv.ParseFloat(v, 64)
	case nil:
		return 0, fmt.Errorf("missing %s", batch.ColumnScore)
	default:
		return 0, fmt.Errorf("%s: unexpected type %T", batch.ColumnScore, v)
	}
}

// NegativeRatio is the share of negative reviews, between 0 and 1.
func NegativeRatio(s *Summary) float64 {
	if s.TotalReviews == 0 {
		return 0
	}
	return float64(s.Statistics[sentiment.Negative.String()].Count) / float64(s.TotalReviews)
}

func round(x float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	r := math.Round(x*p) / p
	if r == 0 {
		return 0
	}
	return r
}
