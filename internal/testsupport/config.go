// Package testsupport provides shared fixtures for caveplan tests: temp-dir
// configs, seeded catalog stores, and scripted interactive input.
package testsupport

import (
	"path/filepath"
	"testing"

	"caveplan/internal/config"
)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.CavesFile = filepath.Join(base, "caves.jsonl")
	cfg.Paths.ImageDir = filepath.Join(base, "images")
	cfg.Paths.OutputDir = filepath.Join(base, "output")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}
