// Package config loads and validates the YAML configuration for an
// ingestion run: portal endpoints, retry and timeout knobs, database
// connection, and resolver settings.
package config
