package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadInlineJSONWithBandObjects(t *testing.T) {
	src := `{
		"manifest_id": "TEST_INLINE_v1",
		"align_computation": {"eps_a": 1e-5, "eps_w": 1e-9},
		"bands": [
			{"name": "LOW", "align_min": -1.0, "align_max": 0.0},
			{"name": "HIGH", "align_min": 0.0, "align_max": 1.0}
		]
	}`
	m, err := Load(src)
	if err != nil {
		t.Fatal(err)
	}
	if m.ID != "TEST_INLINE_v1" {
		t.Fatalf("id = %q", m.ID)
	}
	if m.EpsA != 1e-5 || m.EpsW != 1e-9 {
		t.Fatalf("epsilons = %v, %v", m.EpsA, m.EpsW)
	}
	if len(m.Bands) != 2 || m.Bands[0].Name != "LOW" || m.Bands[1].Name != "HIGH" {
		t.Fatalf("bands = %+v", m.Bands)
	}
}

func TestLoadBandsTupleForm(t *testing.T) {
	src := `{"manifest_id": "TEST_TUPLE_v1", "bands_tuple": [["A", -1.0, 0.2], ["B", 0.2, 1.0]]}`
	m, err := Load(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Bands) != 2 {
		t.Fatalf("bands = %+v", m.Bands)
	}
	if m.Bands[0].Name != "A" || m.Bands[0].Lo != -1.0 || m.Bands[0].Hi != 0.2 {
		t.Fatalf("first band = %+v", m.Bands[0])
	}
}

func TestLoadEpsilonPrecedence(t *testing.T) {
	// Nested align_computation beats the top-level field.
	src := `{"eps_a": 1e-3, "align_computation": {"eps_a": 1e-5}}`
	m, err := Load(src)
	if err != nil {
		t.Fatal(err)
	}
	if m.EpsA != 1e-5 {
		t.Fatalf("eps_a = %v, want nested override 1e-5", m.EpsA)
	}
	// Top-level field beats the built-in default.
	src = `{"eps_w": 1e-10}`
	m, err = Load(src)
	if err != nil {
		t.Fatal(err)
	}
	if m.EpsW != 1e-10 {
		t.Fatalf("eps_w = %v, want top-level 1e-10", m.EpsW)
	}
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	m, err := Load(`{}`)
	if err != nil {
		t.Fatal(err)
	}
	def := Default()
	if m.ID != def.ID {
		t.Fatalf("id = %q, want default %q", m.ID, def.ID)
	}
	if len(m.Bands) != len(def.Bands) {
		t.Fatalf("bands = %+v", m.Bands)
	}
	if m.EpsA != def.EpsA || m.EpsW != def.EpsW {
		t.Fatalf("epsilons = %v, %v", m.EpsA, m.EpsW)
	}
}

func TestLoadFromJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	content := `{"manifest_id": "TEST_FILE_v1", "bands": [{"name": "ALL", "align_min": -1, "align_max": 1}]}`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.ID != "TEST_FILE_v1" || len(m.Bands) != 1 {
		t.Fatalf("manifest = %+v", m)
	}
}

func TestLoadFromYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	content := `manifest_id: TEST_YAML_v1
align_computation:
  eps_a: 1.0e-05
bands:
  - name: LOW
    align_min: -1.0
    align_max: 0.0
  - name: HIGH
    align_min: 0.0
    align_max: 1.0
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.ID != "TEST_YAML_v1" || len(m.Bands) != 2 || m.EpsA != 1e-5 {
		t.Fatalf("manifest = %+v", m)
	}
}

func TestLoadRejectsMalformedInput(t *testing.T) {
	if _, err := Load(`{"bands": [{"align_min": -1}]}`); err == nil {
		t.Fatal("expected error for band without name")
	}
	if _, err := Load(`{"bands_tuple": [["A", -1.0]]}`); err == nil {
		t.Fatal("expected error for short tuple")
	}
	if _, err := Load(`not json at all`); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestLoadTemplateRoundTrips(t *testing.T) {
	m, err := Load(TemplateJSON())
	if err != nil {
		t.Fatal(err)
	}
	if m.ID != DefaultID {
		t.Fatalf("template id = %q", m.ID)
	}
	if r := Validate(m); !r.Valid {
		t.Fatalf("template manifest failed validation: %+v", r.Messages)
	}
}
