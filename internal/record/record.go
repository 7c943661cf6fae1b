// Package record assembles the output unit of the pipeline: fused align
// score, band classification, manifest identity, and the chained audit
// stamp. Records are immutable once built.
package record

import (
	"fmt"

	"ssmde/internal/fusion"
	"ssmde/internal/manifest"
	"ssmde/internal/stamp"
)

// Record is one emitted line. Field order here is the output line order;
// hashing uses the canonical (sorted-key) form of the pre-stamp fields.
type Record struct {
	Value      map[string]any `json:"value"`
	Align      float64        `json:"align"`
	Band       string         `json:"band"`
	ManifestID string         `json:"manifest_id"`
	Stamp      string         `json:"stamp"`
}

// content is the pre-stamp structure the content digest covers.
type content struct {
	Value      map[string]any `json:"value"`
	Align      float64        `json:"align"`
	Band       string         `json:"band"`
	ManifestID string         `json:"manifest_id"`
}

// Build produces one record: fuse the raw series with the manifest's
// epsilon guards, classify the score, and stamp the assembled content.
// prev is the digest of the previous stamp in the chain (empty for a chain
// head); the caller threads StampDigest of the returned record into the
// next Build. All sub-steps are deterministic except wall-clock capture.
func Build(value map[string]any, series []float64, m *manifest.Manifest, weights []float64, prev string) (*Record, error) {
	if value == nil {
		return nil, fmt.Errorf("record: value payload is required")
	}

	align, err := fusion.Fuse(series, weights, m.EpsA, m.EpsW)
	if err != nil {
		return nil, err
	}
	band := m.PickBand(align)

	c := content{Value: value, Align: align, Band: band, ManifestID: m.ID}
	s, err := stamp.Make(c, prev)
	if err != nil {
		return nil, err
	}

	return &Record{
		Value:      value,
		Align:      align,
		Band:       band,
		ManifestID: m.ID,
		Stamp:      s,
	}, nil
}

// StampDigest returns the SHA-256 hex digest of this record's stamp — the
// value the caller passes as prev when building the next record in the
// chain.
func (r *Record) StampDigest() string {
	return stamp.Digest(r.Stamp)
}

// ContentDigestInput returns the canonical bytes the stamp's sha256 field
// was computed over. Used by chain verification to recompute the digest.
func (r *Record) ContentDigestInput() ([]byte, error) {
	return stamp.CanonicalJSON(content{
		Value:      r.Value,
		Align:      r.Align,
		Band:       r.Band,
		ManifestID: r.ManifestID,
	})
}
