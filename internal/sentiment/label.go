package sentiment

import "fmt"

// Label is the sentiment class assigned to a review. The string values are
// the ones written to result files.
type Label string

const (
	Positive Label = "Positif"
	Negative Label = "Negatif"
	Neutral  Label = "Neutre"
)

// Labels lists every label in report order.
var Labels = []Label{Positive, Negative, Neutral}

// Valid reports whether l is one of the defined labels.
func (l Label) Valid() bool {
	switch l {
	case Positive, Negative, Neutral:
		return true
	}
	return false
}

// String returns the label as written to result files.
func (l Label) String() string { return string(l) }

// ParseLabel accepts the French output values and the English names.
func ParseLabel(s string) (Label, error) {
	switch s {
	case "Positif", "Positive":
		return Positive, nil
	case "Negatif", "Négatif", "Negative":
		return Negative, nil
	case "Neutre", "Neutral":
		return Neutral, nil
	}
	return "", fmt.Errorf("sentiment: unknown label: %q", s)
}
