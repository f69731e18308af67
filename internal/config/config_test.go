package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
		Generation: GenerationConfig{APIKey: "test-key"},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingDatabaseAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_MissingGenerationKey(t *testing.T) {
	cfg := validConfig()
	cfg.Generation.APIKey = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing generation api key")
	}
}

func TestValidate_NegativeDimensions(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.Dimensions = -1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for negative embedding dimensions")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 120 {
		t.Errorf("expected WriteTimeoutSec=120, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Embedding.Model != "text-embedding-3-small" {
		t.Errorf("expected default embedding model, got %q", cfg.Embedding.Model)
	}
	if cfg.Generation.Model != "gpt-4o-mini" {
		t.Errorf("expected default generation model, got %q", cfg.Generation.Model)
	}
	if cfg.Generation.Temperature != 0.3 {
		t.Errorf("expected Temperature=0.3, got %v", cfg.Generation.Temperature)
	}
	if cfg.Generation.MaxTokens != 1024 {
		t.Errorf("expected MaxTokens=1024, got %d", cfg.Generation.MaxTokens)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database: DatabaseConfig{ReadinessTimeout: 15},
		Generation: GenerationConfig{
			Model:       "gpt-4o",
			Temperature: 0.7,
			MaxTokens:   2048,
		},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Generation.Model != "gpt-4o" {
		t.Errorf("expected Model=gpt-4o, got %q", cfg.Generation.Model)
	}
	if cfg.Generation.Temperature != 0.7 {
		t.Errorf("expected Temperature=0.7, got %v", cfg.Generation.Temperature)
	}
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("WAQFRAG_TEST_GEN_KEY", "secret-from-env")

	dir := t.TempDir()
	configDir := filepath.Join(dir, "config")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatal(err)
	}
	raw := `
http:
  port: 9090
database:
  addrs: ["localhost:6379"]
generation:
  api_key: ${WAQFRAG_TEST_MISSING:-fallback}${WAQFRAG_TEST_GEN_KEY}
`
	if err := os.WriteFile(filepath.Join(configDir, "test.yaml"), []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("port: got %d, want 9090", cfg.HTTP.Port)
	}
	if cfg.Generation.APIKey != "fallbacksecret-from-env" {
		t.Errorf("api key: got %q", cfg.Generation.APIKey)
	}
}
