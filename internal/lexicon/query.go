package lexicon

import (
	"fmt"
	"strings"
)

func (l *Lexicon) Name() string        { return l.name }
func (l *Lexicon) Version() int        { return l.version }
func (l *Lexicon) Language() string    { return l.language }
func (l *Lexicon) Description() string { return l.description }

// Label identifies the lexicon as name@vN for reports.
func (l *Lexicon) Label() string {
	return fmt.Sprintf("%s@v%d", l.name, l.version)
}

// IsPositive reports whether token is a positive entry.
func (l *Lexicon) IsPositive(token string) bool { return l.positive.has(token) }

// IsNegative reports whether token is a negative entry.
func (l *Lexicon) IsNegative(token string) bool { return l.negative.has(token) }

// IsNegation reports whether token is a negation marker.
func (l *Lexicon) IsNegation(token string) bool { return l.negations.has(token) }

// IsIntensifier reports whether token is an intensifier.
func (l *Lexicon) IsIntensifier(token string) bool { return l.intensifiers.has(token) }

// HasIntensifier reports whether any intensifier occurs as a substring of text.
func (l *Lexicon) HasIntensifier(text string) bool {
	for _, p := range l.intensifiers.entries {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// DeliveryIssueCount returns how many distinct delivery-issue phrases occur
// as substrings of text. Overlapping phrases each count.
func (l *Lexicon) DeliveryIssueCount(text string) int {
	n := 0
	for _, p := range l.delivery.entries {
		if strings.Contains(text, p) {
			n++
		}
	}
	return n
}

// HasDeliveryIssue reports whether any delivery-issue phrase occurs in text.
func (l *Lexicon) HasDeliveryIssue(text string) bool {
	for _, p := range l.delivery.entries {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// Stats holds per-category entry counts.
type Stats struct {
	Positive       int `json:"positive"`
	Negative       int `json:"negative"`
	Intensifiers   int `json:"intensifiers"`
	Negations      int `json:"negations"`
	DeliveryIssues int `json:"delivery_issues"`
}

// Stats returns the size of each category.
func (l *Lexicon) Stats() Stats {
	return Stats{
		Positive:       len(l.positive.entries),
		Negative:       len(l.negative.entries),
		Intensifiers:   len(l.intensifiers.entries),
		Negations:      len(l.negations.entries),
		DeliveryIssues: len(l.delivery.entries),
	}
}
