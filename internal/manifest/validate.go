package manifest

import (
	"fmt"
	"sort"
)

// Level classifies a validation message.
type Level string

const (
	LevelError Level = "error"
	LevelWarn  Level = "warn"
)

// Message is one validation diagnostic.
type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Report is the outcome of manifest validation. Valid is false only when a
// hard structural failure is present; warnings alone do not fail.
type Report struct {
	Valid    bool      `json:"valid"`
	Messages []Message `json:"messages,omitempty"`
}

func (r *Report) fail(format string, args ...any) {
	r.Valid = false
	r.Messages = append(r.Messages, Message{Level: LevelError, Text: fmt.Sprintf(format, args...)})
}

func (r *Report) warn(format string, args ...any) {
	r.Messages = append(r.Messages, Message{Level: LevelWarn, Text: fmt.Sprintf(format, args...)})
}

// coverageTol is the slack allowed before warning that band coverage does
// not reach the full [-1, 1] range.
const coverageTol = 1e-6

// Validate checks a manifest's band set and epsilon guards. Hard failures:
// a band outside [-1, 1] or with a non-increasing interval, and any pair of
// overlapping bands. Everything else (declaration order, gaps, partial
// coverage, unusual epsilons) is advisory.
func Validate(m *Manifest) Report {
	r := Report{Valid: true}

	if len(m.Bands) == 0 {
		r.fail("manifest has no bands")
		return r
	}

	for _, b := range m.Bands {
		if !(-1.0 <= b.Lo && b.Lo < b.Hi && b.Hi <= 1.0) {
			r.fail("band %q out of range or invalid interval: [%v,%v]", b.Name, b.Lo, b.Hi)
		}
	}

	sorted := make([]Band, len(m.Bands))
	copy(sorted, m.Bands)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Hi < sorted[j].Hi })

	for i := range sorted {
		if sorted[i].Name != m.Bands[i].Name {
			r.warn("bands not declared in ascending align_max order; recommend sorting")
			break
		}
	}

	// Overlap is a hard failure, gaps are advisory. Scan in sorted order,
	// comparing each lower bound against the previous upper bound.
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if cur.Lo < prev.Hi {
			r.fail("bands %q and %q overlap: %q ends at %v, %q starts at %v",
				prev.Name, cur.Name, prev.Name, prev.Hi, cur.Name, cur.Lo)
		}
		if cur.Lo > prev.Hi {
			r.warn("gap between band %q (ends %v) and band %q (starts %v)",
				prev.Name, prev.Hi, cur.Name, cur.Lo)
		}
	}

	if sorted[0].Lo > -1.0+coverageTol {
		r.warn("coverage begins at %v (> -1); consider extending to -1", sorted[0].Lo)
	}
	if sorted[len(sorted)-1].Hi < 1.0-coverageTol {
		r.warn("coverage ends at %v (< 1); consider extending to +1", sorted[len(sorted)-1].Hi)
	}

	if !(0 < m.EpsA && m.EpsA < 1e-2) {
		r.warn("eps_a unusual: %v (expected in (0, 1e-2))", m.EpsA)
	}
	if !(0 < m.EpsW && m.EpsW < 1e-6) {
		r.warn("eps_w unusual: %v (expected in (0, 1e-6))", m.EpsW)
	}

	return r
}
