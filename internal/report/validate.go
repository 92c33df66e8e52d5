package report

import (
	"fmt"
	"math"
	"sort"

	"github.com/AlexAdowin/Analyse-sentiments/internal/batch"
	"github.com/AlexAdowin/Analyse-sentiments/internal/reviews"
	"github.com/AlexAdowin/Analyse-sentiments/internal/sentiment"
)

// ValidationError describes a single inconsistency between a summary and
// the table it claims to describe.
type ValidationError struct {
	Path    string
	Message string
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a Summary against its analyzed table.
func Validate(s *Summary, table *reviews.Table) []ValidationError {
	var errs []ValidationError

	if s.TotalReviews != len(table.Rows) {
		errs = append(errs, ValidationError{"total_avis_analyses", fmt.Sprintf("expected %d, got %d", len(table.Rows), s.TotalReviews)})
	}
	if err := (sentiment.Config{PositiveThreshold: s.Meta.PositiveThreshold, NegativeThreshold: s.Meta.NegativeThreshold}).Validate(); err != nil {
		errs = append(errs, ValidationError{"meta", err.Error()})
	}

	counts := make(map[string]int)
	for i, row := range table.Rows {
		label := row.Text(batch.ColumnLabel)
		if _, err := sentiment.ParseLabel(label); err != nil {
			errs = append(errs, ValidationError{fmt.Sprintf("rows[%d].%s", i, batch.ColumnLabel), fmt.Sprintf("invalid: %q", label)})
		}
		counts[label]++
	}

	labels := make([]string, 0, len(counts)+len(s.Statistics))
	seen := make(map[string]bool)
	for l := range counts {
		labels = append(labels, l)
		seen[l] = true
	}
	for l := range s.Statistics {
		if !seen[l] {
			labels = append(labels, l)
		}
	}
	sort.Strings(labels)

	var pctSum float64
	for _, l := range labels {
		ls := s.Statistics[l]
		prefix := fmt.Sprintf("statistiques[%s]", l)
		if ls.Count != counts[l] {
			errs = append(errs, ValidationError{prefix + ".nombre", fmt.Sprintf("expected %d, got %d", counts[l], ls.Count)})
		}
		if ls.Percentage < 0 || ls.Percentage > 100 {
			errs = append(errs, ValidationError{prefix + ".pourcentage", fmt.Sprintf("out of range: %v", ls.Percentage)})
		}
		pctSum += ls.Percentage
	}
	// each percentage is rounded to 2 decimals
	if len(s.Statistics) > 0 && math.Abs(pctSum-100) > 0.005*float64(len(s.Statistics))+1e-9 {
		errs = append(errs, ValidationError{"statistiques", fmt.Sprintf("percentages sum to %.2f", pctSum)})
	}

	if math.IsNaN(s.MeanPolarity) || math.IsInf(s.MeanPolarity, 0) {
		errs = append(errs, ValidationError{"score_moyen_polarite", fmt.Sprintf("invalid: %v", s.MeanPolarity)})
	}
	if s.StdDevPolarity < 0 || math.IsNaN(s.StdDevPolarity) {
		errs = append(errs, ValidationError{"ecart_type_polarite", fmt.Sprintf("invalid: %v", s.StdDevPolarity)})
	}

	return errs
}
