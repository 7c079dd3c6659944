package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"caveplan/internal/config"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("CAVEPLAN_CONFIG", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantCaves := filepath.Join(tempHome, ".local", "share", "caveplan", "caves_transformed.jsonl")
	if cfg.Paths.CavesFile != wantCaves {
		t.Fatalf("unexpected caves file: got %q want %q", cfg.Paths.CavesFile, wantCaves)
	}
	if cfg.Georef.TargetCRS != "EPSG:2180" {
		t.Fatalf("unexpected target CRS: %q", cfg.Georef.TargetCRS)
	}
	if !cfg.Georef.GridConvergence {
		t.Fatal("expected grid convergence enabled by default")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadReadsTOMLAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "caveplan.toml")
	content := strings.Join([]string{
		"[paths]",
		`caves_file = "` + filepath.Join(dir, "caves.jsonl") + `"`,
		`image_dir = "` + dir + `"`,
		`output_dir = "` + filepath.Join(dir, "out") + `"`,
		"[georef]",
		`target_crs = "epsg:2180"`,
		"grid_convergence = false",
		"[logging]",
		`format = "JSON"`,
		`level = "Debug"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("unexpected resolution: exists=%v path=%q", exists, resolved)
	}
	if cfg.Georef.TargetCRS != "EPSG:2180" {
		t.Fatalf("CRS not upper-cased: %q", cfg.Georef.TargetCRS)
	}
	if cfg.Georef.GridConvergence {
		t.Fatal("expected grid convergence disabled")
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging not normalized: %+v", cfg.Logging)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"empty caves file", func(c *config.Config) { c.Paths.CavesFile = "" }},
		{"non-epsg crs", func(c *config.Config) { c.Georef.TargetCRS = "PL-1992" }},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "yaml" }},
		{"bad log level", func(c *config.Config) { c.Logging.Level = "verbose" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestSampleConfigParses(t *testing.T) {
	if !strings.Contains(config.SampleConfig(), "[georef]") {
		t.Fatal("sample config missing georef section")
	}
}
