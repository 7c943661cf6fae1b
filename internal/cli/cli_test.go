package cli

import (
	"os"
	"path/filepath"
	"testing"

	"ssmde/internal/manifest"
)

func TestSessionManifestDefaultsWhenFlagUnset(t *testing.T) {
	manifestSource = ""
	m, err := sessionManifest()
	if err != nil {
		t.Fatal(err)
	}
	if m.ID != manifest.DefaultID {
		t.Fatalf("id = %q, want built-in default", m.ID)
	}
}

func TestSessionManifestLoadsInlineJSON(t *testing.T) {
	manifestSource = `{"manifest_id":"TEST_CLI_v1","bands":[{"name":"ALL","align_min":-1,"align_max":1}]}`
	defer func() { manifestSource = "" }()

	m, err := sessionManifest()
	if err != nil {
		t.Fatal(err)
	}
	if m.ID != "TEST_CLI_v1" {
		t.Fatalf("id = %q", m.ID)
	}
}

func TestSessionManifestPropagatesLoadError(t *testing.T) {
	manifestSource = `{"bands_tuple": [["broken"]]}`
	defer func() { manifestSource = "" }()

	if _, err := sessionManifest(); err == nil {
		t.Fatal("expected load error")
	}
}

func TestManifestInitRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	if err := runManifestInit(manifestInitCmd, []string{path}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("template not written: %v", err)
	}
	if err := runManifestInit(manifestInitCmd, []string{path}); err == nil {
		t.Fatal("expected refusal to overwrite existing file")
	}
}

func TestManifestInitTemplateLoadsAndValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	if err := runManifestInit(manifestInitCmd, []string{path}); err != nil {
		t.Fatal(err)
	}

	m, err := manifest.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if r := manifest.Validate(m); !r.Valid {
		t.Fatalf("generated template failed validation: %+v", r.Messages)
	}
}
