// Package polarity defines the general-purpose polarity oracle consulted
// alongside the lexicon, and its implementations.
package polarity

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrOutOfRange    = errors.New("polarity outside [-1, 1]")
	ErrUnknownOracle = errors.New("unknown polarity oracle")
)

// Oracle maps normalized text to a polarity in [-1, 1]. Implementations must
// be synchronous and deterministic for identical input.
type Oracle interface {
	Score(text string) (float64, error)
	Name() string
}

// Func adapts a plain function to the Oracle interface.
type Func func(text string) (float64, error)

func (f Func) Score(text string) (float64, error) { return f(text) }
func (f Func) Name() string                       { return "func" }

// Checked wraps o so that NaN, infinite or out-of-range answers become errors.
func Checked(o Oracle) Oracle {
	return checked{o}
}

type checked struct {
	Oracle
}

func (c checked) Score(text string) (float64, error) {
	v, err := c.Oracle.Score(text)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || v < -1 || v > 1 {
		return 0, fmt.Errorf("%s: %v: %w", c.Oracle.Name(), v, ErrOutOfRange)
	}
	return v, nil
}

// Resolve returns the oracle registered under name. An empty name selects VADER.
func Resolve(name string) (Oracle, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "vader":
		return Checked(NewVader()), nil
	case "none", "off":
		return Neutral(), nil
	}
	return nil, fmt.Errorf("polarity.Resolve: %q: %w", name, ErrUnknownOracle)
}
