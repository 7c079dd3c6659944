package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCatalogImportAndList(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, env, "catalog", "import")
	if err != nil {
		t.Fatalf("catalog import: %v", err)
	}
	requireContains(t, out, "Imported 3 caves")

	out, err = runCLI(t, env, "catalog", "list")
	if err != nil {
		t.Fatalf("catalog list: %v", err)
	}
	requireContains(t, out, "J.Mg.01.01")
	requireContains(t, out, "Jaskinia Łokietka")
	requireContains(t, out, "3 caves")

	out, err = runCLI(t, env, "catalog", "list", "--region", "Tatry")
	if err != nil {
		t.Fatalf("catalog list --region: %v", err)
	}
	requireContains(t, out, "2 caves")
	if strings.Contains(out, "K.Oj.03.14") {
		t.Errorf("region filter leaked other regions:\n%s", out)
	}
}

func TestCatalogListEmpty(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, env, "catalog", "list")
	if err != nil {
		t.Fatalf("catalog list: %v", err)
	}
	requireContains(t, out, "No caves in catalog")
}

func TestShowCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, err := runCLI(t, env, "catalog", "import"); err != nil {
		t.Fatalf("catalog import: %v", err)
	}

	out, err := runCLI(t, env, "show", "J.Mg.01.01")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	requireContains(t, out, "Jaskinia Miętusia")
	requireContains(t, out, "49.252800, 19.906700")
	requireContains(t, out, "plan_01.png")

	if _, err := runCLI(t, env, "show", "NO.SUCH.CAVE"); err == nil {
		t.Fatal("expected error for unknown cave id")
	}
}

func TestExportGPX(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, err := runCLI(t, env, "catalog", "import"); err != nil {
		t.Fatalf("catalog import: %v", err)
	}

	target := filepath.Join(t.TempDir(), "caves.gpx")
	out, err := runCLI(t, env, "export", "gpx", "--output", target)
	if err != nil {
		t.Fatalf("export gpx: %v", err)
	}
	requireContains(t, out, "Wrote 3 waypoints")

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read gpx: %v", err)
	}
	requireContains(t, string(data), "Jaskinia Łokietka")
	requireContains(t, string(data), `lat="49.2528"`)
}

func TestExportGPXEmptyCatalog(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, err := runCLI(t, env, "export", "gpx"); err == nil {
		t.Fatal("expected error for empty catalog")
	}
}

func TestConfigInitAndShow(t *testing.T) {
	env := setupCLITestEnv(t)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, err := runCLI(t, env, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	// A second init without --overwrite must refuse.
	if _, err := runCLI(t, env, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config already exists")
	}

	out, err = runCLI(t, env, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "EPSG:2180")
	requireContains(t, out, "catalog.db")
}

func TestGeorefRefusesWithoutTerminal(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, err := runCLI(t, env, "catalog", "import"); err != nil {
		t.Fatalf("catalog import: %v", err)
	}

	// Test stdin is never a tty, so the guard must trip before any store
	// access.
	_, err := runCLI(t, env, "georef", "J.Mg.01.01")
	if err == nil {
		t.Fatal("expected georef to refuse without a terminal")
	}
	requireContains(t, err.Error(), "not a tty")
}
