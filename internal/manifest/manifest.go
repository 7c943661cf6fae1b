// Package manifest defines the policy band configuration: named intervals
// over the align axis plus the epsilon guards used by fusion. A Manifest is
// immutable after Load and safe to share across concurrent callers.
package manifest

import (
	"sort"

	"ssmde/internal/fusion"
)

// Unbanded is the sentinel classification for a score outside every
// configured band. Downstream consumers treat it as an observability
// signal, not an error.
const Unbanded = "UNBANDED"

// Band is a named interval over the align axis. Intervals are open at the
// lower bound and closed at the upper bound; the globally lowest band
// carries IncludesLower so the extreme boundary value (exactly -1.0)
// still classifies.
type Band struct {
	Name          string  `json:"name" yaml:"name"`
	Lo            float64 `json:"align_min" yaml:"align_min"`
	Hi            float64 `json:"align_max" yaml:"align_max"`
	IncludesLower bool    `json:"-" yaml:"-"`
}

// Contains reports whether score falls inside the band's interval.
func (b Band) Contains(score float64) bool {
	if b.IncludesLower {
		return score >= b.Lo && score <= b.Hi
	}
	return score > b.Lo && score <= b.Hi
}

// Manifest is the versioned band configuration. Bands hold declaration
// order; lookup uses ascending-by-upper-bound order.
type Manifest struct {
	ID    string
	Bands []Band
	EpsA  float64
	EpsW  float64

	// byHi is the lookup order, fixed at construction.
	byHi []Band
}

// DefaultID is the built-in manifest identity.
const DefaultID = "PLANT_A_BEARING_SAFETY_v7"

// Default returns the built-in bearing-safety manifest.
func Default() *Manifest {
	return New(DefaultID, []Band{
		{Name: "CRITICAL", Lo: -1.00, Hi: -0.80},
		{Name: "AMBER", Lo: -0.80, Hi: -0.30},
		{Name: "A0", Lo: -0.30, Hi: 0.70},
		{Name: "A++", Lo: 0.70, Hi: 1.00},
	}, fusion.DefaultEpsA, fusion.DefaultEpsW)
}

// New builds a Manifest, marking the globally lowest band as closed at its
// lower bound and fixing the sorted lookup order.
func New(id string, bands []Band, epsA, epsW float64) *Manifest {
	m := &Manifest{ID: id, EpsA: epsA, EpsW: epsW}
	m.Bands = make([]Band, len(bands))
	copy(m.Bands, bands)

	if len(m.Bands) > 0 {
		lowest := 0
		for i, b := range m.Bands {
			if b.Lo < m.Bands[lowest].Lo {
				lowest = i
			}
		}
		for i := range m.Bands {
			m.Bands[i].IncludesLower = i == lowest
		}
	}

	m.byHi = make([]Band, len(m.Bands))
	copy(m.byHi, m.Bands)
	sort.SliceStable(m.byHi, func(i, j int) bool { return m.byHi[i].Hi < m.byHi[j].Hi })
	return m
}

// PickBand classifies an align score into a band name, or Unbanded when no
// interval contains it. Bands are scanned in ascending-by-upper-bound order
// so out-of-order declarations cannot shadow each other.
func (m *Manifest) PickBand(score float64) string {
	for _, b := range m.byHi {
		if b.Contains(score) {
			return b.Name
		}
	}
	return Unbanded
}
