// Package config loads, normalizes, and validates filesort configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads an optional TOML file. The Config type centralizes
// every knob the organizer and CLI need: the source directory, the ordered
// category labels, extra extension-to-media-type mappings, the collision
// policy, and log output.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, lower-cased extensions, and clear validation errors.
package config
