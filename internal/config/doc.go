// Package config loads, normalizes, and validates gifforge configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files from ~/.config/gifforge/config.toml or a
// project-local gifforge.toml. The Config type centralizes every knob the CLI
// and studio need.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
