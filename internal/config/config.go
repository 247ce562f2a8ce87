package config

import "time"

// Config is the root configuration for the disclosure pipeline.
type Config struct {
	Instance InstanceConfig `yaml:"instance"`
	Senate   SenateConfig   `yaml:"senate"`
	House    HouseConfig    `yaml:"house"`
	Database DBConfig       `yaml:"database"`
	Resolver ResolverConfig `yaml:"resolver"`
}

// InstanceConfig identifies this pipeline instance.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// SenateConfig holds settings for the token-protected Senate portal.
type SenateConfig struct {
	BaseURL      string        `yaml:"base_url"`
	Timeout      time.Duration `yaml:"timeout"`       // Handshake/query timeout
	MaxRetries   int           `yaml:"max_retries"`   // Network-level retries per request
	RetryBackoff time.Duration `yaml:"retry_backoff"` // Base backoff between retries
	PageLength   int           `yaml:"page_length"`   // Rows requested per query page
}

// HouseConfig holds settings for the House clerk portal.
type HouseConfig struct {
	BaseURL      string        `yaml:"base_url"`
	Timeout      time.Duration `yaml:"timeout"`
	DocTimeout   time.Duration `yaml:"doc_timeout"` // Per-document fetch timeout
	MaxRetries   int           `yaml:"max_retries"`
	RetryBackoff time.Duration `yaml:"retry_backoff"`
}

// DBConfig holds the PostgreSQL connection for the filing store.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// ResolverConfig holds external symbol-search settings for the ticker
// resolver.
type ResolverConfig struct {
	SearchURL    string        `yaml:"search_url"`
	APIKey       string        `yaml:"api_key"`
	Timeout      time.Duration `yaml:"timeout"`
	LookupDelay  time.Duration `yaml:"lookup_delay"` // Pause between external calls
	BatchLimit   int           `yaml:"batch_limit"`  // Max distinct names per run, 0 = all
}
