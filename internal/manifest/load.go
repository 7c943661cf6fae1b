package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// wireManifest is the on-disk schema. Epsilons are recognized in two places
// with documented precedence: the nested align_computation block overrides
// the top-level field, which overrides the built-in default.
type wireManifest struct {
	ManifestID string   `json:"manifest_id" yaml:"manifest_id"`
	EpsA       *float64 `json:"eps_a" yaml:"eps_a"`
	EpsW       *float64 `json:"eps_w" yaml:"eps_w"`

	AlignComputation struct {
		EpsA *float64 `json:"eps_a" yaml:"eps_a"`
		EpsW *float64 `json:"eps_w" yaml:"eps_w"`
	} `json:"align_computation" yaml:"align_computation"`

	Bands      []wireBand `json:"bands" yaml:"bands"`
	BandsTuple [][]any    `json:"bands_tuple" yaml:"bands_tuple"`
}

type wireBand struct {
	Name     string  `json:"name" yaml:"name"`
	AlignMin float64 `json:"align_min" yaml:"align_min"`
	AlignMax float64 `json:"align_max" yaml:"align_max"`
}

// Load builds a Manifest from inline JSON or a file path. Paths ending in
// .yaml or .yml parse as YAML; everything else parses as JSON. Missing
// bands fall back to the built-in default band set.
func Load(source string) (*Manifest, error) {
	data := []byte(source)
	asYAML := false

	if info, err := os.Stat(source); err == nil && !info.IsDir() {
		data, err = os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("manifest: read %s: %w", source, err)
		}
		ext := strings.ToLower(filepath.Ext(source))
		asYAML = ext == ".yaml" || ext == ".yml"
	}

	var w wireManifest
	if asYAML {
		if err := yaml.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("manifest: parse yaml: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("manifest: parse json: %w", err)
		}
	}

	return fromWire(w)
}

func fromWire(w wireManifest) (*Manifest, error) {
	def := Default()

	id := w.ManifestID
	if id == "" {
		id = def.ID
	}

	epsA := def.EpsA
	if w.EpsA != nil {
		epsA = *w.EpsA
	}
	if w.AlignComputation.EpsA != nil {
		epsA = *w.AlignComputation.EpsA
	}

	epsW := def.EpsW
	if w.EpsW != nil {
		epsW = *w.EpsW
	}
	if w.AlignComputation.EpsW != nil {
		epsW = *w.AlignComputation.EpsW
	}

	bands, err := bandsFromWire(w)
	if err != nil {
		return nil, err
	}
	if len(bands) == 0 {
		bands = def.Bands
	}

	return New(id, bands, epsA, epsW), nil
}

// bandsFromWire accepts either the object list or the flat triple list.
func bandsFromWire(w wireManifest) ([]Band, error) {
	if len(w.Bands) > 0 {
		bands := make([]Band, len(w.Bands))
		for i, b := range w.Bands {
			if b.Name == "" {
				return nil, fmt.Errorf("manifest: band %d has no name", i)
			}
			bands[i] = Band{Name: b.Name, Lo: b.AlignMin, Hi: b.AlignMax}
		}
		return bands, nil
	}

	var bands []Band
	for i, t := range w.BandsTuple {
		if len(t) != 3 {
			return nil, fmt.Errorf("manifest: bands_tuple entry %d has %d elements, want 3", i, len(t))
		}
		name, ok := t[0].(string)
		if !ok || name == "" {
			return nil, fmt.Errorf("manifest: bands_tuple entry %d has invalid name", i)
		}
		lo, err := toFloat(t[1])
		if err != nil {
			return nil, fmt.Errorf("manifest: bands_tuple entry %d lower bound: %w", i, err)
		}
		hi, err := toFloat(t[2])
		if err != nil {
			return nil, fmt.Errorf("manifest: bands_tuple entry %d upper bound: %w", i, err)
		}
		bands = append(bands, Band{Name: name, Lo: lo, Hi: hi})
	}
	return bands, nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("not a number: %v", v)
	}
}

// Effective is the normalized dump form written by `manifest dump`.
type Effective struct {
	ManifestID string  `json:"manifest_id"`
	EpsA       float64 `json:"eps_a"`
	EpsW       float64 `json:"eps_w"`
	Bands      []Band  `json:"bands"`
}

// Dump returns the normalized effective manifest.
func (m *Manifest) Dump() Effective {
	return Effective{ManifestID: m.ID, EpsA: m.EpsA, EpsW: m.EpsW, Bands: m.Bands}
}
