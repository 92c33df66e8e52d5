package polarity

import "github.com/jonreiter/govader"

// Vader scores text with the VADER compound score. VADER's English lexicon
// is extended with French valences for words it does not already know.
//
// The lexicon is only written in NewVader, so Score is safe for concurrent use.
type Vader struct {
	sia *govader.SentimentIntensityAnalyzer
}

// NewVader builds a VADER oracle with the French extension applied.
func NewVader() *Vader {
	sia := govader.NewSentimentIntensityAnalyzer()
	for word, valence := range frenchValences {
		if _, exists := sia.Lexicon[word]; !exists {
			sia.Lexicon[word] = valence
		}
	}
	return &Vader{sia: sia}
}

// Name returns "vader".
func (v *Vader) Name() string { return "vader" }

// Score returns the compound polarity of text, 0 for empty text.
func (v *Vader) Score(text string) (float64, error) {
	if text == "" {
		return 0, nil
	}
	return v.sia.PolarityScores(text).Compound, nil
}

// frenchValences uses the VADER scale (-4 to +4).
var frenchValences = map[string]float64{
	"excellent":        3.2,
	"excellente":       3.2,
	"parfait":          3.0,
	"parfaite":         3.0,
	"génial":           3.1,
	"géniale":          3.1,
	"magnifique":       3.0,
	"formidable":       2.9,
	"merveilleux":      3.1,
	"merveilleuse":     3.1,
	"satisfait":        2.0,
	"satisfaite":       2.0,
	"ravi":             2.6,
	"ravie":            2.6,
	"content":          2.0,
	"contente":         2.0,
	"recommande":       1.8,
	"adore":            2.9,
	"jadore":           2.9,
	"ladore":           2.9,
	"aime":             2.2,
	"jaime":            2.2,
	"bon":              1.9,
	"bonne":            1.9,
	"bien":             1.4,
	"agréable":         2.1,
	"impeccable":       2.6,
	"efficace":         1.6,
	"facile":           1.2,
	"rapide":           1.1,
	"merci":            1.5,
	"bravo":            2.4,
	"mauvais":          -2.5,
	"mauvaise":         -2.5,
	"nul":              -2.3,
	"nulle":            -2.3,
	"affreux":          -2.9,
	"affreuse":         -2.9,
	"décevant":         -2.2,
	"décevante":        -2.2,
	"déçu":             -2.0,
	"déçue":            -2.0,
	"déception":        -2.2,
	"cassé":            -1.9,
	"endommagé":        -1.8,
	"défectueux":       -2.1,
	"arnaque":          -3.0,
	"médiocre":         -2.0,
	"catastrophique":   -3.1,
	"pire":             -2.9,
	"lent":             -1.1,
	"cher":             -0.8,
	"inutile":          -1.9,
	"inacceptable":     -2.6,
	"dommage":          -1.5,
	"incompréhensible": -1.7,
}
