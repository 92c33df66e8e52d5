// Package redact masks personal data in review text before it is written
// to result files.
package redact

import "regexp"

// Mask replaces every matched value.
const Mask = "[MASQUÉ]"

type rule struct {
	re   *regexp.Regexp
	repl string
}

var rules []rule

func init() {
	raw := []struct {
		pattern string
		repl    string
	}{
		// E-mail addresses
		{`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`, Mask},
		// Payment card numbers, 13 to 19 digits with optional separators
		{`\b(?:\d[ \-]?){12,18}\d\b`, Mask},
		// French phone numbers: 06 12 34 56 78, 06.12.34.56.78, +33 6 12 34 56 78
		{`(?:\+33[\s.]?|\b0)[1-9](?:[\s.\-]?\d{2}){4}\b`, Mask},
		// Order references; the keyword is kept
		{`(?i)(\b(?:commande|order|cmd)\s*(?:n°|no\.?|#|numéro)?\s*:?\s*)[A-Z0-9][A-Z0-9\-]*\d[A-Z0-9\-]*`, "${1}" + Mask},
	}
	for _, r := range raw {
		rules = append(rules, rule{regexp.MustCompile(r.pattern), r.repl})
	}
}

// Redact replaces personal data patterns in text with Mask.
func Redact(text string) string {
	for _, r := range rules {
		text = r.re.ReplaceAllString(text, r.repl)
	}
	return text
}
