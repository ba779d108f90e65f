// Package config loads, normalizes, and validates shortwave configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// BLUESKY_HANDLE and BLUESKY_PASSWORD. The Config type centralizes every knob
// the CLI needs, from tool binaries to upload poll bounds.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
