package record

import (
	"strings"
	"testing"

	"ssmde/internal/manifest"
	"ssmde/internal/stamp"
)

func TestBuildClassifiesDefaultBandMidpoints(t *testing.T) {
	m := manifest.Default()
	for _, b := range m.Bands {
		mid := (b.Lo + b.Hi) / 2.0
		rec, err := Build(map[string]any{"x": 1}, []float64{mid, mid, mid}, m, nil, "")
		if err != nil {
			t.Fatal(err)
		}
		if rec.Band != b.Name {
			t.Fatalf("midpoint %v classified as %q, want %q", mid, rec.Band, b.Name)
		}
		if rec.ManifestID != m.ID {
			t.Fatalf("manifest id = %q", rec.ManifestID)
		}
	}
}

func TestBuildStampMatchesGrammar(t *testing.T) {
	rec, err := Build(map[string]any{"foo": 42}, []float64{0.15, 0.05, 0.10}, manifest.Default(), nil, "")
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := stamp.Parse(rec.Stamp)
	if err != nil {
		t.Fatalf("stamp %q does not match grammar: %v", rec.Stamp, err)
	}
	if parsed.Prev != stamp.NoPrev {
		t.Fatalf("chain head prev = %q, want %q", parsed.Prev, stamp.NoPrev)
	}
}

func TestBuildChainsPrevDigest(t *testing.T) {
	m := manifest.Default()
	r1, err := Build(map[string]any{"x": 1}, []float64{0.1, 0.1, 0.1}, m, nil, "")
	if err != nil {
		t.Fatal(err)
	}
	prev := r1.StampDigest()

	r2, err := Build(map[string]any{"x": 2}, []float64{0.2, 0.2, 0.2}, m, nil, prev)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(r2.Stamp, "prev="+prev) {
		t.Fatalf("stamp %q does not reference previous digest %q", r2.Stamp, prev)
	}
}

func TestBuildSaturatedSeriesTopBand(t *testing.T) {
	rec, err := Build(map[string]any{"x": 1}, []float64{0.99, 0.99, 0.99}, manifest.Default(), nil, "")
	if err != nil {
		t.Fatal(err)
	}
	if !(rec.Align > 0.9 && rec.Align < 1.0) {
		t.Fatalf("align = %v, expected close to but below 1.0", rec.Align)
	}
	if rec.Band != "A++" {
		t.Fatalf("band = %q, want topmost A++", rec.Band)
	}
}

func TestBuildUnbandedScore(t *testing.T) {
	m := manifest.New("TEST_GAP_v1", []manifest.Band{
		{Name: "NEG", Lo: -1.0, Hi: -0.5},
	}, 1e-6, 1e-12)
	rec, err := Build(map[string]any{"x": 1}, []float64{0.5, 0.5}, m, nil, "")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Band != manifest.Unbanded {
		t.Fatalf("band = %q, want %q", rec.Band, manifest.Unbanded)
	}
}

func TestBuildRejectsBadInput(t *testing.T) {
	m := manifest.Default()
	if _, err := Build(nil, []float64{0.1}, m, nil, ""); err == nil {
		t.Fatal("expected error for nil value payload")
	}
	if _, err := Build(map[string]any{}, nil, m, nil, ""); err == nil {
		t.Fatal("expected error for empty series")
	}
	if _, err := Build(map[string]any{}, []float64{0.1, 0.2}, m, []float64{1}, ""); err == nil {
		t.Fatal("expected error for mismatched weights")
	}
}

func TestContentDigestInputIsCanonical(t *testing.T) {
	rec, err := Build(map[string]any{"b": 2, "a": 1}, []float64{0.1}, manifest.Default(), nil, "")
	if err != nil {
		t.Fatal(err)
	}
	canon, err := rec.ContentDigestInput()
	if err != nil {
		t.Fatal(err)
	}
	s := string(canon)
	if !strings.HasPrefix(s, `{"align":`) {
		t.Fatalf("canonical content not key-sorted: %s", s)
	}
	if !strings.Contains(s, `"value":{"a":1,"b":2}`) {
		t.Fatalf("nested value not key-sorted: %s", s)
	}
}
