package polarity

// Static is an oracle that always returns the same answer. It backs the
// "none" oracle and doubles as a test fake.
type Static struct {
	Value float64
	Err   error
}

// Neutral returns an oracle that scores every text 0.
func Neutral() *Static { return &Static{} }

func (s *Static) Name() string { return "none" }

func (s *Static) Score(_ string) (float64, error) {
	return s.Value, s.Err
}
