// Package sentiment classifies short customer reviews as positive, negative
// or neutral.
//
// Each text is normalized, then scored twice: by the lexicon keyword scorer
// and by an external polarity oracle. The two scores are blended 0.6 oracle
// to 0.4 lexical, a fixed penalty is subtracted when a delivery issue is
// mentioned, and the result is compared against two inclusive thresholds.
//
// An Analyzer is immutable after New and safe for concurrent use as long as
// its oracle is.
package sentiment

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/AlexAdowin/Analyse-sentiments/internal/lexicon"
	"github.com/AlexAdowin/Analyse-sentiments/internal/normalize"
	"github.com/AlexAdowin/Analyse-sentiments/internal/polarity"
)

const (
	oracleWeight    = 0.6
	lexicalWeight   = 0.4
	deliveryPenalty = 0.3
)

// Result is the outcome for one text. Score is rounded to 3 decimals.
type Result struct {
	Label Label   `json:"label"`
	Score float64 `json:"score"`
}

// String returns a debug representation of the result.
func (r Result) String() string {
	return fmt.Sprintf("%s(%.3f)", r.Label, r.Score)
}

// Components are the intermediate values behind a Result.
type Components struct {
	Normalized             string  `json:"normalized"`
	LexicalScore           float64 `json:"lexical_score"`
	ExternalPolarity       float64 `json:"external_polarity"`
	DeliveryPenaltyApplied bool    `json:"delivery_penalty_applied"`
	FinalScore             float64 `json:"final_score"`
}

// Analysis bundles a Result with how it was obtained. Err is set when
// scoring failed and the result was degraded to Neutral 0.
type Analysis struct {
	Result     Result     `json:"result"`
	Components Components `json:"components"`
	Err        error      `json:"-"`
}

// Degraded reports whether scoring failed for this text.
func (a Analysis) Degraded() bool { return a.Err != nil }

// Analyzer combines a lexicon, a polarity oracle and thresholds.
type Analyzer struct {
	cfg    Config
	lex    *lexicon.Lexicon
	oracle polarity.Oracle
	logger *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger used for construction and degraded texts.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// New validates cfg and returns an Analyzer. An invalid threshold ordering
// returns an error wrapping ErrInvalidThresholds.
func New(cfg Config, lex *lexicon.Lexicon, oracle polarity.Oracle, opts ...Option) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sentiment.New: %w", err)
	}
	if lex == nil {
		return nil, errors.New("sentiment.New: nil lexicon")
	}
	if oracle == nil {
		return nil, errors.New("sentiment.New: nil polarity oracle")
	}
	a := &Analyzer{
		cfg:    cfg,
		lex:    lex,
		oracle: oracle,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger.Info("analyzer initialized",
		"positive_threshold", cfg.PositiveThreshold,
		"negative_threshold", cfg.NegativeThreshold,
		"lexicon", lex.Label(),
		"oracle", oracle.Name(),
	)
	return a, nil
}

// Config returns the thresholds the analyzer was built with.
func (a *Analyzer) Config() Config { return a.cfg }

// Lexicon returns the lexicon used for keyword scoring.
func (a *Analyzer) Lexicon() *lexicon.Lexicon { return a.lex }

// Oracle returns the external polarity oracle.
func (a *Analyzer) Oracle() polarity.Oracle { return a.oracle }

// Classify returns the label and rounded score for text. It never fails:
// scoring errors degrade to Neutral 0 and are logged.
func (a *Analyzer) Classify(text string) Result {
	return a.Analyze(text).Result
}

// Analyze is Classify with the intermediate scores and any scoring error.
func (a *Analyzer) Analyze(text string) (an Analysis) {
	if strings.TrimSpace(text) == "" {
		return Analysis{Result: Result{Label: Neutral}}
	}
	normalized := normalize.Text(text)
	if normalized == "" {
		return Analysis{Result: Result{Label: Neutral}, Components: Components{Normalized: normalized}}
	}

	defer func() {
		if r := recover(); r != nil {
			an = a.degrade(normalized, fmt.Errorf("sentiment: panic while scoring: %v", r))
		}
	}()

	external, err := a.oracle.Score(normalized)
	if err != nil {
		return a.degrade(normalized, fmt.Errorf("sentiment: %s oracle: %w", a.oracle.Name(), err))
	}
	lexical := LexicalScore(a.lex, normalized)

	final := oracleWeight*external + lexicalWeight*lexical
	penalty := a.lex.HasDeliveryIssue(normalized)
	if penalty {
		final -= deliveryPenalty
	}

	return Analysis{
		Result: Result{
			Label: a.cfg.Label(final),
			Score: Round3(final),
		},
		Components: Components{
			Normalized:             normalized,
			LexicalScore:           lexical,
			ExternalPolarity:       external,
			DeliveryPenaltyApplied: penalty,
			FinalScore:             final,
		},
	}
}

func (a *Analyzer) degrade(normalized string, err error) Analysis {
	a.logger.Warn("scoring failed, result set to neutral", "error", err, "text_len", len(normalized))
	return Analysis{
		Result:     Result{Label: Neutral},
		Components: Components{Normalized: normalized},
		Err:        err,
	}
}

// Round3 rounds x to 3 decimals, halves away from zero. Negative zero
// becomes 0.
func Round3(x float64) float64 {
	r := math.Round(x*1000) / 1000
	if r == 0 {
		return 0
	}
	return r
}
