// Package config loads, normalizes, and validates abrpack configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// PACKAGER_EXECUTABLE and S3_ENDPOINT_URL. Obtain settings through this
// package so downstream code receives sanitized paths and clear validation
// errors.
package config
