// Package lexicon loads the curated word lists used by the keyword scorer.
//
// A lexicon is versioned data: one YAML document holding positive and
// negative phrases, intensifiers, negation markers and delivery-issue
// phrases. Entries are normalized with the same normalizer applied to
// review text, so they can be compared directly against normalized input.
// A loaded Lexicon is immutable and safe for concurrent use.
package lexicon

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/AlexAdowin/Analyse-sentiments/internal/normalize"
	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Default is the canonical builtin lexicon.
const Default = "fr"

var (
	ErrUnknown       = errors.New("unknown lexicon")
	ErrDuplicate     = errors.New("duplicate entry")
	ErrEmptyCategory = errors.New("empty category")
)

// Document is the YAML shape of a lexicon file.
type Document struct {
	Name           string   `yaml:"name"`
	Version        int      `yaml:"version"`
	Language       string   `yaml:"language"`
	Description    string   `yaml:"description"`
	Positive       []string `yaml:"positive"`
	Negative       []string `yaml:"negative"`
	Intensifiers   []string `yaml:"intensifiers"`
	Negations      []string `yaml:"negations"`
	DeliveryIssues []string `yaml:"delivery_issues"`
}

// Lexicon is a validated, normalized set of phrase categories.
type Lexicon struct {
	name        string
	version     int
	language    string
	description string

	positive     phraseSet
	negative     phraseSet
	intensifiers phraseSet
	negations    phraseSet
	delivery     phraseSet
}

// phraseSet keeps both a membership index and the original order, which
// makes substring scans deterministic.
type phraseSet struct {
	index   map[string]struct{}
	entries []string
}

func (s phraseSet) has(token string) bool {
	_, ok := s.index[token]
	return ok
}

func newPhraseSet(category string, raw []string) (phraseSet, error) {
	s := phraseSet{index: make(map[string]struct{}, len(raw))}
	for i, r := range raw {
		p := normalize.Text(r)
		if p == "" {
			return phraseSet{}, fmt.Errorf("%s[%d]: %q normalizes to an empty phrase", category, i, r)
		}
		if s.has(p) {
			return phraseSet{}, fmt.Errorf("%s[%d]: %q: %w", category, i, p, ErrDuplicate)
		}
		s.index[p] = struct{}{}
		s.entries = append(s.entries, p)
	}
	return s, nil
}

// New builds a Lexicon from a decoded document.
func New(doc Document) (*Lexicon, error) {
	required := []struct {
		name    string
		entries []string
	}{
		{"positive", doc.Positive},
		{"negative", doc.Negative},
		{"negations", doc.Negations},
	}
	for _, r := range required {
		if len(r.entries) == 0 {
			return nil, fmt.Errorf("lexicon.New: %s: %w", r.name, ErrEmptyCategory)
		}
	}

	lex := &Lexicon{
		name:        doc.Name,
		version:     doc.Version,
		language:    doc.Language,
		description: strings.TrimSpace(doc.Description),
	}
	var err error
	for _, c := range []struct {
		name string
		raw  []string
		dst  *phraseSet
	}{
		{"positive", doc.Positive, &lex.positive},
		{"negative", doc.Negative, &lex.negative},
		{"intensifiers", doc.Intensifiers, &lex.intensifiers},
		{"negations", doc.Negations, &lex.negations},
		{"delivery_issues", doc.DeliveryIssues, &lex.delivery},
	} {
		if *c.dst, err = newPhraseSet(c.name, c.raw); err != nil {
			return nil, fmt.Errorf("lexicon.New: %w", err)
		}
	}
	return lex, nil
}

// Parse decodes and validates a YAML lexicon.
func Parse(data []byte) (*Lexicon, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("lexicon.Parse: %w", err)
	}
	return New(doc)
}

// LoadBuiltin loads an embedded lexicon by name.
func LoadBuiltin(name string) (*Lexicon, error) {
	data, err := builtinFS.ReadFile("builtin/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("lexicon.LoadBuiltin: %q: %w", name, ErrUnknown)
	}
	lex, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("lexicon.LoadBuiltin: %q: %w", name, err)
	}
	return lex, nil
}

// Load reads a lexicon from a YAML file.
func Load(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lexicon.Load: %w", err)
	}
	lex, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("lexicon.Load: %s: %w", path, err)
	}
	return lex, nil
}

// Resolve loads nameOrPath as a file when it exists, otherwise as a builtin name.
// An empty argument selects Default.
func Resolve(nameOrPath string) (*Lexicon, error) {
	if nameOrPath == "" {
		return LoadBuiltin(Default)
	}
	if info, err := os.Stat(nameOrPath); err == nil && !info.IsDir() {
		return Load(nameOrPath)
	}
	return LoadBuiltin(nameOrPath)
}

// List returns the names of all builtin lexicons, sorted.
func List() ([]string, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if strings.HasSuffix(n, ".yaml") {
			names = append(names, strings.TrimSuffix(n, ".yaml"))
		}
	}
	sort.Strings(names)
	return names, nil
}
