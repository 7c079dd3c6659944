// Package config loads, normalizes, and validates caveplan configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the CAVEPLAN_CONFIG environment
// fallback for the file location. The Config type centralizes every knob the
// CLI needs: catalog and image locations, the target CRS for georeferencing,
// and log routing.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
