// Package trip accumulates the great-circle distance along a stream of
// location records.
package trip

import (
	"github.com/mekedron/logtrip/internal/domain"
	"github.com/mekedron/logtrip/internal/geo"
)

// Summary is the result of one accumulation pass. Lines counts every input
// line read, skipped ones included.
type Summary struct {
	Distance float64          `json:"distance" yaml:"distance"`
	Unit     geo.Unit         `json:"unit" yaml:"unit"`
	Lines    int              `json:"lines" yaml:"lines"`
	Records  int              `json:"records" yaml:"records"`
	Pairs    int              `json:"pairs" yaml:"pairs"`
	Bounds   *geo.Bounds      `json:"bounds,omitempty" yaml:"bounds,omitempty"`
	Centre   *domain.Position `json:"centre,omitempty" yaml:"centre,omitempty"`
}

// Accumulator sums haversine distances over consecutive positions, keeping
// only the previous position.
type Accumulator struct {
	unit    geo.Unit
	prev    domain.Position
	hasPrev bool
	total   float64
	records int
	pairs   int
	bounds  geo.Bounds
}

// NewAccumulator creates an accumulator reporting in unit.
func NewAccumulator(unit geo.Unit) *Accumulator {
	if unit == "" {
		unit = geo.Kilometers
	}
	return &Accumulator{unit: unit}
}

// Add feeds the next position. From the second position on, the distance
// from the previous one is added to the total.
func (a *Accumulator) Add(p domain.Position) {
	a.records++
	a.bounds = a.bounds.Extend(p)
	if !a.hasPrev {
		a.prev = p
		a.hasPrev = true
		return
	}
	a.total += geo.Distance(a.prev, p, a.unit)
	a.pairs++
	a.prev = p
}

// Total returns the unrounded running total.
func (a *Accumulator) Total() float64 {
	return a.total
}

// Summary snapshots the accumulator state.
func (a *Accumulator) Summary() Summary {
	s := Summary{
		Distance: a.total,
		Unit:     a.unit,
		Records:  a.records,
		Pairs:    a.pairs,
	}
	if !a.bounds.Empty() {
		bounds := a.bounds
		centre := bounds.Centre()
		s.Bounds = &bounds
		s.Centre = &centre
	}
	return s
}
