// Package config loads and validates camsort configuration data.
//
// It supplies repository defaults, expands tilde paths, and reads TOML files.
// The Config type holds every knob the CLI needs; a missing config file is
// not an error, so the tool works out of the box with defaults.
package config
