// Package config loads, normalizes, and validates ytpd configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// YTPD_DOWNLOAD_DIR. The Config type centralizes the default download
// preferences, external tool locations, and logging knobs the CLI needs.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
