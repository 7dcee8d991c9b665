// Package config handles configuration loading, parsing, and validation
// from defaults, an optional YAML file and CAKES_* environment variables.
// It provides type-safe access to settings while keeping configuration
// details separate from business logic.
package config
