// Package config loads and merges application configuration for the sync
// server and the replica client from three sources: environment variables,
// command-line flags, and an optional JSON file. Sources are merged with
// mergo (first non-zero value wins), then validated.
package config
