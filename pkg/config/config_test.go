package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/rsa-in-go/pkg/rsa"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o600))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("RSA_CONFIG_PATH", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2048, cfg.KeySize)
	assert.Equal(t, rsa.DefaultMaxAttempts, cfg.MaxAttempts)
	assert.Equal(t, 256, cfg.Certainty)
	assert.Equal(t, rsa.AcceptancePolicyObserved, cfg.AcceptancePolicy)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.AuditEnabled)
	assert.Equal(t, "default", cfg.Source("key_size"))
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RSA_CONFIG_PATH", dir)
	writeConfig(t, dir, `
key_size: 1024
acceptance_policy: strict
audit_enabled: true
certainty: 0
`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1024, cfg.KeySize)
	assert.Equal(t, rsa.AcceptancePolicyStrict, cfg.AcceptancePolicy)
	assert.True(t, cfg.AuditEnabled)
	assert.Equal(t, 0, cfg.Certainty)
	assert.Equal(t, "file", cfg.Source("key_size"))
	assert.Equal(t, "file", cfg.Source("certainty"))
	assert.Equal(t, "default", cfg.Source("max_attempts"))
	assert.Equal(t, filepath.Join(dir, ConfigFileName), cfg.ConfigFilePath())
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RSA_CONFIG_PATH", dir)
	t.Setenv("RSA_KEY_SIZE", "512")
	t.Setenv("RSA_ACCEPTANCE_POLICY", "observed")
	t.Setenv("RSA_LOG_LEVEL", "debug")
	t.Setenv("AUDIT_DATABASE_URL", "postgres://audit:secret@db/audit")
	writeConfig(t, dir, "key_size: 1024\nacceptance_policy: strict\n")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 512, cfg.KeySize)
	assert.Equal(t, "environment", cfg.Source("key_size"))
	assert.Equal(t, rsa.AcceptancePolicyObserved, cfg.AcceptancePolicy)
	assert.Equal(t, "environment", cfg.Source("acceptance_policy"))
	assert.Equal(t, logrus.DebugLevel, cfg.Level())
	assert.Equal(t, "postgres://audit:secret@db/audit", cfg.AuditDatabaseURL)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
	}{
		{name: "malformed yaml", file: "key_size: [\n"},
		{name: "unknown policy in file", file: "acceptance_policy: lenient\n"},
		{name: "non-numeric env", env: map[string]string{"RSA_MAX_ATTEMPTS": "many"}},
		{name: "unknown policy in env", env: map[string]string{"RSA_ACCEPTANCE_POLICY": "lenient"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Setenv("RSA_CONFIG_PATH", dir)
			if tt.file != "" {
				writeConfig(t, dir, tt.file)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{name: "odd key size", modify: func(c *Config) { c.KeySize = 1023 }},
		{name: "tiny key size", modify: func(c *Config) { c.KeySize = 2 }},
		{name: "zero attempts", modify: func(c *Config) { c.MaxAttempts = 0 }},
		{name: "zero draws", modify: func(c *Config) { c.MaxDraws = 0 }},
		{name: "zero candidates", modify: func(c *Config) { c.MaxCandidates = 0 }},
		{name: "negative certainty", modify: func(c *Config) { c.Certainty = -1 }},
		{name: "unknown policy", modify: func(c *Config) { c.AcceptancePolicy = rsa.AcceptancePolicy(9) }},
		{name: "unknown log level", modify: func(c *Config) { c.LogLevel = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newDefault()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestAttributesRedactPassword(t *testing.T) {
	cfg := newDefault()
	cfg.AuditDatabaseURL = "postgres://audit:secret@db:5432/audit?sslmode=disable"

	for _, attr := range cfg.Attributes() {
		if attr.Name == "audit_database_url" {
			assert.Equal(t, "postgres://audit:xxxxx@db:5432/audit?sslmode=disable", attr.Value)
			return
		}
	}
	t.Fatal("audit_database_url attribute missing")
}

func TestFormatText(t *testing.T) {
	t.Setenv("RSA_CONFIG_PATH", t.TempDir())
	cfg, err := Load()
	require.NoError(t, err)

	text := cfg.FormatText()
	assert.Contains(t, text, "Config file: ")
	assert.Contains(t, text, "acceptance_policy")
	assert.Contains(t, text, "observed")
	assert.Contains(t, text, "(not set)")
}

func TestFormatJSON(t *testing.T) {
	t.Setenv("RSA_CONFIG_PATH", t.TempDir())
	cfg, err := Load()
	require.NoError(t, err)

	out, err := cfg.FormatJSON()
	require.NoError(t, err)

	var decoded struct {
		ConfigFile string      `json:"config_file"`
		Attributes []Attribute `json:"attributes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Len(t, decoded.Attributes, len(attributeNames()))
}

func TestGeneratorOptions(t *testing.T) {
	cfg := newDefault()
	cfg.AcceptancePolicy = rsa.AcceptancePolicyStrict
	cfg.Certainty = 40

	gen := rsa.NewGenerator(cfg.GeneratorOptions()...)
	key, err := gen.Generate(64)
	require.NoError(t, err)
	assert.Equal(t, 64, key.Size())
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RSA_CONFIG_PATH", dir)
	writeConfig(t, dir, "key_size: 1024\n")
	require.NoError(t, Reload())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, func(cfg *Config) {
			select {
			case reloaded <- cfg:
			default:
			}
		})
	}()

	// Give the watcher time to register before modifying the file.
	time.Sleep(100 * time.Millisecond)
	staged := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(staged, []byte("key_size: 4096\n"), 0o600))
	require.NoError(t, os.Rename(staged, filepath.Join(dir, ConfigFileName)))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-reloaded:
			if cfg.KeySize != 4096 {
				continue
			}
			assert.Equal(t, 4096, Get().KeySize)
		case <-deadline:
			t.Fatal("timed out waiting for reload")
		}
		break
	}

	cancel()
	assert.NoError(t, <-done)
}
