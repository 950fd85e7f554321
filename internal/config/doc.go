// Package config loads, normalizes, and validates vecalc configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the VECALC_LOG_LEVEL environment
// fallback. The Config type centralizes the knobs the CLI needs: where logs
// and lock files go, how mixes with no effective weight are reported, whether
// validation warnings fail a run, and how JSON output is rendered.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
