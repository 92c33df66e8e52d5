package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexAdowin/Analyse-sentiments/internal/lexicon"
	"github.com/AlexAdowin/Analyse-sentiments/internal/metrics"
	"github.com/AlexAdowin/Analyse-sentiments/internal/polarity"
	"github.com/AlexAdowin/Analyse-sentiments/internal/reviews"
	"github.com/AlexAdowin/Analyse-sentiments/internal/sentiment"
)

func newAnalyzer(t *testing.T, oracle polarity.Oracle) *sentiment.Analyzer {
	t.Helper()
	lex, err := lexicon.LoadBuiltin("fr")
	require.NoError(t, err)
	a, err := sentiment.New(sentiment.DefaultConfig(), lex, oracle)
	require.NoError(t, err)
	return a
}

func sampleTable() *reviews.Table {
	return &reviews.Table{
		Source:  "mem",
		Columns: []string{"review_id", "review_text"},
		Rows: []reviews.Row{
			{"review_id": "R1", "review_text": "Excellent produit, je le recommande vivement à tout le monde !"},
			{"review_id": "R2", "review_text": "Colis perdu"},
			{"review_id": "R3", "review_text": nil},
			{"review_id": "R4", "review_text": "Le produit est fourni dans les temps"},
			{"review_id": "R5"},
		},
	}
}

func TestRun(t *testing.T) {
	in := sampleTable()
	out, stats, err := Run(context.Background(), in, newAnalyzer(t, polarity.Neutral()), Options{TextField: "review_text"})
	require.NoError(t, err)

	assert.Equal(t, []string{"review_id", "review_text", ColumnLabel, ColumnScore}, out.Columns)
	require.Len(t, out.Rows, 5)

	want := []struct {
		id    string
		label string
		score float64
	}{
		{"R1", "Positif", 0.156},
		{"R2", "Negatif", -0.42},
		{"R3", "Neutre", 0},
		{"R4", "Neutre", 0},
		{"R5", "Neutre", 0},
	}
	for i, w := range want {
		row := out.Rows[i]
		assert.Equal(t, w.id, row["review_id"], "row %d order", i)
		assert.Equal(t, w.label, row[ColumnLabel], "row %d label", i)
		assert.InDelta(t, w.score, row[ColumnScore], 1e-9, "row %d score", i)
	}
	assert.Equal(t, 5, stats.Rows)
	assert.Zero(t, stats.Degraded)

	assert.False(t, in.HasColumn(ColumnLabel), "input table must not be modified")
	assert.NotContains(t, in.Rows[0], ColumnLabel)
}

func TestRunMissingField(t *testing.T) {
	called := false
	oracle := polarity.Func(func(string) (float64, error) {
		called = true
		return 0, nil
	})
	_, _, err := Run(context.Background(), sampleTable(), newAnalyzer(t, oracle), Options{TextField: "commentaire"})
	assert.ErrorIs(t, err, ErrMissingField)
	assert.False(t, called, "no row may be processed")

	_, _, err = Run(context.Background(), sampleTable(), newAnalyzer(t, oracle), Options{})
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestRunDegradedRowsContinue(t *testing.T) {
	oracle := polarity.Func(func(text string) (float64, error) {
		if strings.Contains(text, "perdu") {
			return 0, errors.New("oracle timeout")
		}
		return 0, nil
	})
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	out, stats, err := Run(context.Background(), sampleTable(), newAnalyzer(t, oracle), Options{
		TextField: "review_text",
		Metrics:   m,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Degraded)
	assert.Equal(t, "Neutre", out.Rows[1][ColumnLabel])
	assert.Equal(t, 0.0, out.Rows[1][ColumnScore])
	assert.Equal(t, "Positif", out.Rows[0][ColumnLabel])

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Degraded))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.Reviews.WithLabelValues("Neutre")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Reviews.WithLabelValues("Positif")))
}

func TestRunWorkerCountDoesNotChangeResults(t *testing.T) {
	in := &reviews.Table{Columns: []string{"review_text"}}
	texts := []string{"Très très satisfait ! Merci.", "Trop cher pour ce que c'est. Je suis déçu.", "", "Vraiment bien.", "Il est arrivé en retard."}
	for i := 0; i < 200; i++ {
		in.Rows = append(in.Rows, reviews.Row{"review_text": fmt.Sprintf("%s #%d", texts[i%len(texts)], i)})
	}
	a := newAnalyzer(t, polarity.Neutral())

	serial, _, err := Run(context.Background(), in, a, Options{TextField: "review_text", Workers: 1})
	require.NoError(t, err)
	parallel, _, err := Run(context.Background(), in, a, Options{TextField: "review_text", Workers: 16})
	require.NoError(t, err)

	assert.Equal(t, serial.Rows, parallel.Rows)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := Run(ctx, sampleTable(), newAnalyzer(t, polarity.Neutral()), Options{TextField: "review_text"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunFakeClock(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	_, stats, err := Run(context.Background(), sampleTable(), newAnalyzer(t, polarity.Neutral()), Options{
		TextField: "review_text",
		Clock:     clock,
	})
	require.NoError(t, err)
	assert.Zero(t, stats.Elapsed)
}

func TestRunKeepsExistingResultColumns(t *testing.T) {
	in := &reviews.Table{
		Columns: []string{"review_text", ColumnLabel},
		Rows:    []reviews.Row{{"review_text": "Colis perdu", ColumnLabel: "stale"}},
	}
	out, _, err := Run(context.Background(), in, newAnalyzer(t, polarity.Neutral()), Options{TextField: "review_text"})
	require.NoError(t, err)
	assert.Equal(t, []string{"review_text", ColumnLabel, ColumnScore}, out.Columns)
	assert.Equal(t, "Negatif", out.Rows[0][ColumnLabel])
}
