package upgrade

import (
	"errors"
	"log/slog"

	"github.com/udisondev/maskborn/internal/model"
)

// ErrNoCandidates is returned when a picker is built from an empty set.
var ErrNoCandidates = errors.New("weighted picker needs at least one candidate")

// Weighted is one picker candidate.
type Weighted[T any] struct {
	Item   T
	Weight float64
}

// Picker selects items with probability proportional to their weight.
// When every weight is zero it falls back to a uniform pick.
type Picker[T any] struct {
	items      []T
	cumulative []float64
	total      float64
}

// NewPicker builds a picker. Negative weights count as zero.
func NewPicker[T any](candidates []Weighted[T]) (*Picker[T], error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	p := &Picker[T]{
		items:      make([]T, 0, len(candidates)),
		cumulative: make([]float64, 0, len(candidates)),
	}
	for i, c := range candidates {
		w := c.Weight
		if w < 0 {
			slog.Warn("negative pick weight treated as zero", "index", i, "weight", w)
			w = 0
		}
		p.total += w
		p.items = append(p.items, c.Item)
		p.cumulative = append(p.cumulative, p.total)
	}
	if p.total == 0 {
		slog.Warn("all pick weights are zero, using uniform distribution", "candidates", len(candidates))
	}
	return p, nil
}

// Len returns the number of candidates.
func (p *Picker[T]) Len() int {
	return len(p.items)
}

// Pick draws one item.
func (p *Picker[T]) Pick(rng model.Random) T {
	if p.total == 0 {
		return p.items[model.RandIndex(rng, len(p.items))]
	}
	r := rng.Float64() * p.total
	for i, c := range p.cumulative {
		if r < c {
			return p.items[i]
		}
	}
	// r == total only through rounding; the last positive weight wins.
	for i := len(p.items) - 1; i >= 0; i-- {
		if i == 0 || p.cumulative[i] > p.cumulative[i-1] {
			return p.items[i]
		}
	}
	return p.items[len(p.items)-1]
}
