package sentiment

import (
	"github.com/AlexAdowin/Analyse-sentiments/internal/lexicon"
	"github.com/AlexAdowin/Analyse-sentiments/internal/normalize"
)

const (
	// NegationWindow is how many preceding tokens are searched for a negation marker.
	NegationWindow = 3

	keywordWeight         = 1.0
	negatedNegativeWeight = 0.5
	deliveryIssueWeight   = 2.0
	intensifierFactor     = 1.3
	lexicalScale          = 0.15
)

// IsNegated reports whether one of the NegationWindow tokens before index is
// a negation marker. Index 0 is never negated.
func IsNegated(lex *lexicon.Lexicon, tokens []string, index int) bool {
	if index <= 0 {
		return false
	}
	if index > len(tokens) {
		index = len(tokens)
	}
	start := index - NegationWindow
	if start < 0 {
		start = 0
	}
	for _, tok := range tokens[start:index] {
		if lex.IsNegation(tok) {
			return true
		}
	}
	return false
}

// LexicalScore computes the keyword score of an already normalized text.
//
// A negated positive counts fully against the text while a negated negative
// only adds half a point in its favor: "pas bon" is clearly negative, "pas
// mal" only mildly positive. Delivery-issue phrases weigh 2 each against the
// text, and any intensifier amplifies whichever tally is ahead by 1.3.
func LexicalScore(lex *lexicon.Lexicon, normalized string) float64 {
	tokens := normalize.Tokens(normalized)

	var pos, neg float64
	for i, tok := range tokens {
		switch {
		case lex.IsPositive(tok):
			if IsNegated(lex, tokens, i) {
				neg += keywordWeight
			} else {
				pos += keywordWeight
			}
		case lex.IsNegative(tok):
			if IsNegated(lex, tokens, i) {
				pos += negatedNegativeWeight
			} else {
				neg += keywordWeight
			}
		}
	}

	neg += float64(lex.DeliveryIssueCount(normalized)) * deliveryIssueWeight

	if lex.HasIntensifier(normalized) {
		switch {
		case pos > neg:
			pos *= intensifierFactor
		case neg > pos:
			neg *= intensifierFactor
		}
	}

	return (pos - neg) * lexicalScale
}
