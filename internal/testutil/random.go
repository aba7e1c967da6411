package testutil

// Sequence is a deterministic random source that returns its values in order
// and then repeats the last one. An empty Sequence always returns 0.
type Sequence struct {
	values []float64
	pos    int
}

// NewSequence creates a Sequence.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

// Float64 returns the next value.
func (s *Sequence) Float64() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[min(s.pos, len(s.values)-1)]
	s.pos++
	return v
}

// Calls returns how many values were drawn.
func (s *Sequence) Calls() int {
	return s.pos
}

// Constant always returns the same value.
type Constant float64

// Float64 returns c.
func (c Constant) Float64() float64 {
	return float64(c)
}
