// Package normalize case-folds review text and strips noise before scoring.
//
// Normalization lowercases the input, removes URLs, drops every character
// that is not a letter, digit, mark, underscore, whitespace or one of a
// small set of expressive symbols, and collapses whitespace. The result is
// NFC-composed so that decomposed accents compare equal to lexicon entries.
//
// Text is idempotent: Text(Text(s)) == Text(s) for every s.
package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Expressive lists the symbols that survive punctuation stripping.
const Expressive = "⭐🌟★❤♥💖💗💓💕💞💘😍🔥💯"

var (
	urlPattern = regexp.MustCompile(`(?:https?://|www\.)\S+`)

	// Letters, digits, combining marks (accents, emoji variation selectors),
	// underscore, whitespace and the expressive whitelist are kept.
	noisePattern = regexp.MustCompile(`[^\p{L}\p{N}\p{M}_\s\p{Z}` + Expressive + `]`)
)

// Text returns the normalized form of s. Empty input yields "".
func Text(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFC.String(strings.ToLower(s))
	s = urlPattern.ReplaceAllString(s, " ")
	s = noisePattern.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), " ")
	return norm.NFC.String(s)
}

// Tokens splits an already normalized text into its whitespace-delimited tokens.
func Tokens(normalized string) []string {
	return strings.Fields(normalized)
}
