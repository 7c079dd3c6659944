package config

const (
	defaultCavesFile = "~/.local/share/caveplan/caves_transformed.jsonl"
	defaultImageDir  = "~/.local/share/caveplan/caves_upscaled"
	defaultOutputDir = "~/.local/share/caveplan/georeferenced"
	defaultLogDir    = "~/.local/share/caveplan/logs"
	defaultTargetCRS = "EPSG:2180"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CavesFile: defaultCavesFile,
			ImageDir:  defaultImageDir,
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Georef: Georef{
			TargetCRS:       defaultTargetCRS,
			GridConvergence: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
