package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	yaml := `
instance:
  id: test-pipeline
senate:
  base_url: https://efd.example.gov
database:
  host: localhost
  port: 5432
  name: test_db
  user: testuser
  password: testpass
resolver:
  search_url: https://symbols.example.com/search
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Instance.ID != "test-pipeline" {
		t.Errorf("Instance.ID = %q, want %q", cfg.Instance.ID, "test-pipeline")
	}
	if cfg.Senate.BaseURL != "https://efd.example.gov" {
		t.Errorf("Senate.BaseURL = %q, want %q", cfg.Senate.BaseURL, "https://efd.example.gov")
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("Database.Host = %q, want %q", cfg.Database.Host, "localhost")
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_DB_PASSWORD", "secret123")

	yaml := `
instance:
  id: test-pipeline
database:
  host: localhost
  name: test_db
  user: testuser
  password: ${TEST_DB_PASSWORD}
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Password != "secret123" {
		t.Errorf("Database.Password = %q, want %q", cfg.Database.Password, "secret123")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	yaml := `
instance:
  id: test-pipeline
database:
  host: localhost
  name: test_db
  user: testuser
  password: testpass
`
	path := writeTempFile(t, yaml)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	// Check defaults were applied
	if cfg.Senate.BaseURL != DefaultSenateURL {
		t.Errorf("Senate.BaseURL = %q, want default %q", cfg.Senate.BaseURL, DefaultSenateURL)
	}
	if cfg.Senate.Timeout != DefaultPortalTimeout {
		t.Errorf("Senate.Timeout = %v, want default %v", cfg.Senate.Timeout, DefaultPortalTimeout)
	}
	if cfg.Senate.PageLength != DefaultPageLength {
		t.Errorf("Senate.PageLength = %d, want default %d", cfg.Senate.PageLength, DefaultPageLength)
	}
	if cfg.House.DocTimeout != DefaultDocTimeout {
		t.Errorf("House.DocTimeout = %v, want default %v", cfg.House.DocTimeout, DefaultDocTimeout)
	}
	if cfg.Database.Port != DefaultDBPort {
		t.Errorf("Database.Port = %d, want default %d", cfg.Database.Port, DefaultDBPort)
	}
	if cfg.Database.MaxConns != DefaultMaxConns {
		t.Errorf("Database.MaxConns = %d, want default %d", cfg.Database.MaxConns, DefaultMaxConns)
	}
	if cfg.Resolver.LookupDelay != DefaultLookupDelay {
		t.Errorf("Resolver.LookupDelay = %v, want default %v", cfg.Resolver.LookupDelay, DefaultLookupDelay)
	}
}

func TestValidate(t *testing.T) {
	validDB := DBConfig{Host: "localhost", Name: "db", User: "user", Password: "pass", MaxConns: 10, MinConns: 2}

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "missing instance id",
			cfg:     Config{},
			wantErr: "instance.id is required",
		},
		{
			name: "missing database host",
			cfg: Config{
				Instance: InstanceConfig{ID: "test"},
			},
			wantErr: "database.host is required",
		},
		{
			name: "missing database password",
			cfg: Config{
				Instance: InstanceConfig{ID: "test"},
				Database: DBConfig{Host: "localhost", Name: "db", User: "user"},
			},
			wantErr: "database.password is required",
		},
		{
			name: "min_conns exceeds max_conns",
			cfg: Config{
				Instance: InstanceConfig{ID: "test"},
				Database: DBConfig{Host: "localhost", Name: "db", User: "user", Password: "pass", MaxConns: 5, MinConns: 10},
			},
			wantErr: "database.min_conns (10) cannot exceed max_conns (5)",
		},
		{
			name: "missing search url",
			cfg: Config{
				Instance: InstanceConfig{ID: "test"},
				Database: validDB,
				Senate:   SenateConfig{PageLength: 100, MaxRetries: 3},
				House:    HouseConfig{MaxRetries: 3},
			},
			wantErr: "resolver.search_url is required",
		},
		{
			name: "valid config",
			cfg: Config{
				Instance: InstanceConfig{ID: "test"},
				Database: validDB,
				Senate:   SenateConfig{PageLength: 100, MaxRetries: 3},
				House:    HouseConfig{MaxRetries: 3},
				Resolver: ResolverConfig{SearchURL: "https://symbols.example.com/search"},
			},
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("Validate() expected error containing %q, got nil", tt.wantErr)
				} else if err.Error() != tt.wantErr {
					t.Errorf("Validate() error = %q, want %q", err.Error(), tt.wantErr)
				}
			}
		})
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}
