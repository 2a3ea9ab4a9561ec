// Package config loads, normalizes, and validates the TOML configuration
// file, with environment fallbacks for secrets.
package config
