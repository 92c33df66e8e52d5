package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AlexAdowin/Analyse-sentiments/internal/sentiment"
)

const barWidth = 40

// Markdown renders a summary as a Markdown report with one bar per label.
func Markdown(s *Summary) string {
	var b strings.Builder

	b.WriteString("# Analyse de sentiment\n\n")
	fmt.Fprintf(&b, "**Avis analysés :** %d\n", s.TotalReviews)
	fmt.Fprintf(&b, "**Score moyen de polarité :** %.3f (écart-type %.3f)\n\n", s.MeanPolarity, s.StdDevPolarity)

	if s.TotalReviews == 0 {
		b.WriteString("Aucun avis analysé.\n\n")
	} else {
		b.WriteString("## Répartition\n\n")
		b.WriteString("| Sentiment | Nombre | Pourcentage | |\n")
		b.WriteString("|---|---:|---:|---|\n")
		for _, label := range orderedLabels(s.Statistics) {
			ls := s.Statistics[label]
			fmt.Fprintf(&b, "| %s | %d | %.2f %% | %s |\n", label, ls.Count, ls.Percentage, bar(ls.Percentage))
		}
		b.WriteString("\n")
	}

	m := s.Meta
	b.WriteString("## Paramètres\n\n")
	if m.InputFile != "" {
		fmt.Fprintf(&b, "- Fichier : `%s`", m.InputFile)
		if m.InputHash != "" {
			fmt.Fprintf(&b, " (%s)", m.InputHash)
		}
		b.WriteString("\n")
	}
	if m.Lexicon != "" {
		fmt.Fprintf(&b, "- Lexique : %s v%d\n", m.Lexicon, m.LexiconVersion)
	}
	if m.Oracle != "" {
		fmt.Fprintf(&b, "- Polarité externe : %s\n", m.Oracle)
	}
	fmt.Fprintf(&b, "- Seuils : positif >= %g, négatif <= %g\n", m.PositiveThreshold, m.NegativeThreshold)
	if m.RunID != "" {
		fmt.Fprintf(&b, "- Exécution : %s, %s\n", m.RunID, m.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	}

	return b.String()
}

// orderedLabels lists the known labels first, then any others sorted.
func orderedLabels(stats map[string]LabelStats) []string {
	var out []string
	known := make(map[string]bool)
	for _, l := range []sentiment.Label{sentiment.Positive, sentiment.Neutral, sentiment.Negative} {
		known[l.String()] = true
		if _, ok := stats[l.String()]; ok {
			out = append(out, l.String())
		}
	}
	var rest []string
	for l := range stats {
		if !known[l] {
			rest = append(rest, l)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func bar(pct float64) string {
	n := int(pct/100*barWidth + 0.5)
	if n < 0 {
		n = 0
	}
	if n > barWidth {
		n = barWidth
	}
	return strings.Repeat("█", n)
}
