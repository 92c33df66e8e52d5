package sentiment

import (
	"errors"
	"fmt"
)

// ErrInvalidThresholds is returned when the positive threshold does not
// exceed the negative one.
var ErrInvalidThresholds = errors.New("positive threshold must be greater than negative threshold")

// Config holds the two classification thresholds. Both bounds are inclusive.
type Config struct {
	PositiveThreshold float64 `json:"positive_threshold"`
	NegativeThreshold float64 `json:"negative_threshold"`
}

// DefaultConfig returns the 0.1 / -0.1 thresholds.
func DefaultConfig() Config {
	return Config{PositiveThreshold: 0.1, NegativeThreshold: -0.1}
}

// Validate checks PositiveThreshold > NegativeThreshold.
func (c Config) Validate() error {
	if !(c.PositiveThreshold > c.NegativeThreshold) {
		return fmt.Errorf("positive %v, negative %v: %w", c.PositiveThreshold, c.NegativeThreshold, ErrInvalidThresholds)
	}
	return nil
}

// Label maps a final score onto exactly one label.
func (c Config) Label(score float64) Label {
	switch {
	case score >= c.PositiveThreshold:
		return Positive
	case score <= c.NegativeThreshold:
		return Negative
	default:
		return Neutral
	}
}
