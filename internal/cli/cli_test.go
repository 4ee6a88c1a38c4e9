package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseFormats(t *testing.T) {
	c := &CLI{Config: DefaultConfig()}

	got := c.parseFormats("")
	if len(got) != 1 || got[0] != "svg" {
		t.Errorf("parseFormats(\"\") = %v, want [svg]", got)
	}

	got = c.parseFormats("svg,png")
	if len(got) != 2 || got[0] != "svg" || got[1] != "png" {
		t.Errorf("parseFormats(\"svg,png\") = %v", got)
	}

	// Config default takes over when the flag is empty.
	c.Config.Render.Formats = []string{"png", "pdf"}
	got = c.parseFormats("")
	if len(got) != 2 || got[0] != "png" {
		t.Errorf("parseFormats with config defaults = %v, want [png pdf]", got)
	}
}

func TestArtifactBasePath(t *testing.T) {
	tests := []struct {
		output string
		input  string
		want   string
	}{
		{"", "water.json", "water"},
		{"", "molecule", "molecule"},
		{"out.svg", "water.json", "out"},
		{"diagrams/ethanol", "water.json", "diagrams/ethanol"},
		{"out.backup", "water.json", "out.backup"}, // unknown extension kept
	}

	for _, tt := range tests {
		if got := artifactBasePath(tt.output, tt.input); got != tt.want {
			t.Errorf("artifactBasePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestReadNotation(t *testing.T) {
	if _, err := readNotation(nil, ""); err == nil {
		t.Error("no source should fail")
	}
	if _, err := readNotation([]string{"C"}, "some.txt"); err == nil {
		t.Error("both sources should fail")
	}

	got, err := readNotation([]string{"C[right:-:O];O[left:-:C]"}, "")
	if err != nil {
		t.Fatalf("readNotation() error = %v", err)
	}
	if got != "C[right:-:O];O[left:-:C]" {
		t.Errorf("readNotation() = %q", got)
	}

	path := filepath.Join(t.TempDir(), "mol.lewis")
	if err := os.WriteFile(path, []byte("  C;O\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err = readNotation(nil, path)
	if err != nil {
		t.Fatalf("readNotation(file) error = %v", err)
	}
	if got != "C;O" {
		t.Errorf("readNotation(file) = %q, want trimmed contents", got)
	}
}

func TestLoadConfig(t *testing.T) {
	// Missing file falls back to defaults.
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadConfig(missing) error = %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("default addr = %q, want :8080", cfg.Server.Addr)
	}

	// Valid file overrides defaults.
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[render]
scale = 100.0
background = "ivory"
formats = ["png"]

[server]
addr = ":9999"
redis = "localhost:6379"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Render.Scale != 100.0 || cfg.Render.Background != "ivory" {
		t.Errorf("render config = %+v", cfg.Render)
	}
	if cfg.Server.Addr != ":9999" || cfg.Server.Redis != "localhost:6379" {
		t.Errorf("server config = %+v", cfg.Server)
	}

	// Malformed file is an error.
	bad := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(bad, []byte("[render\nscale="), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); err == nil {
		t.Error("malformed config should fail")
	}
}
