package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"caveplan/internal/testsupport"
)

type cliTestEnv struct {
	configPath string
	outputDir  string
	imageDir   string
	cavesFile  string
}

const sampleCatalogJSONL = `{"cave_id":"J.Mg.01.01","name":"Jaskinia Miętusia","inventory_number":"J.Mg.01.01","region":"Tatry","commune":"Kościelisko","latitude":49.2528,"longitude":19.9067,"images":[{"image_path":"plan_01.png","metadata":{"graphics_type_name":"plan"}}]}
{"cave_id":"J.Mg.01.02","name":"Jaskinia Mała","inventory_number":"J.Mg.01.02","region":"Tatry","commune":"Kościelisko","latitude":49.25,"longitude":19.9,"images":[]}
{"cave_id":"K.Oj.03.14","name":"Jaskinia Łokietka","inventory_number":"K.Oj.03.14","region":"Wyżyna Krakowska","commune":"Skała","latitude":50.2065,"longitude":19.8245,"images":[]}
`

func setupCLITestEnv(t *testing.T) cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	if err := os.WriteFile(cfg.Paths.CavesFile, []byte(sampleCatalogJSONL), 0o644); err != nil {
		t.Fatalf("write caves file: %v", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return cliTestEnv{
		configPath: configPath,
		outputDir:  cfg.Paths.OutputDir,
		imageDir:   cfg.Paths.ImageDir,
		cavesFile:  cfg.Paths.CavesFile,
	}
}

// runCLI executes the root command with the given args against the test
// config and returns captured stdout.
func runCLI(t *testing.T, env cliTestEnv, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func requireContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("output missing %q:\n%s", want, output)
	}
}
