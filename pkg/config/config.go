package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/doodlesbykumbi/rsa-in-go/pkg/rsa"
	"github.com/doodlesbykumbi/rsa-in-go/pkg/sampling"
)

const (
	DefaultConfigPath = "/etc/rsa-in-go"
	ConfigFileName    = "rsa.yml"
)

// Config holds the key generation and audit settings
type Config struct {
	// KeySize is the modulus size in bits used when none is given
	KeySize int `yaml:"key_size" json:"key_size"`

	// MaxAttempts bounds the prime pairs drawn per key
	MaxAttempts int `yaml:"max_attempts" json:"max_attempts"`

	// MaxDraws bounds a single rejection sampling loop
	MaxDraws int `yaml:"max_draws" json:"max_draws"`

	// MaxCandidates bounds the composites tolerated per prime search
	MaxCandidates int `yaml:"max_candidates" json:"max_candidates"`

	// Certainty is the primality confidence in bits
	Certainty int `yaml:"certainty" json:"certainty"`

	// AcceptancePolicy is "observed" or "strict"
	AcceptancePolicy rsa.AcceptancePolicy `yaml:"acceptance_policy" json:"acceptance_policy"`

	// LogLevel is a logrus level name
	LogLevel string `yaml:"log_level" json:"log_level"`

	AuditEnabled     bool   `yaml:"audit_enabled" json:"audit_enabled"`
	AuditDatabaseURL string `yaml:"audit_database_url" json:"audit_database_url"`

	// sources tracks where each value came from
	sources map[string]string

	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// fileConfig mirrors Config with pointers so explicit zero values in the file
// are distinguishable from absent keys.
type fileConfig struct {
	KeySize          *int                  `yaml:"key_size"`
	MaxAttempts      *int                  `yaml:"max_attempts"`
	MaxDraws         *int                  `yaml:"max_draws"`
	MaxCandidates    *int                  `yaml:"max_candidates"`
	Certainty        *int                  `yaml:"certainty"`
	AcceptancePolicy *rsa.AcceptancePolicy `yaml:"acceptance_policy"`
	LogLevel         *string               `yaml:"log_level"`
	AuditEnabled     *bool                 `yaml:"audit_enabled"`
	AuditDatabaseURL *string               `yaml:"audit_database_url"`
}

// Global singleton config
var (
	globalConfig *Config
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			// Return defaults on error
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault returns a config with default values
func newDefault() *Config {
	return &Config{
		KeySize:          2048,
		MaxAttempts:      rsa.DefaultMaxAttempts,
		MaxDraws:         sampling.DefaultMaxDraws,
		MaxCandidates:    sampling.DefaultMaxCandidates,
		Certainty:        sampling.DefaultCertainty,
		AcceptancePolicy: rsa.AcceptancePolicyObserved,
		LogLevel:         "info",
		sources:          make(map[string]string),
	}
}

// Path returns the config file location, honouring RSA_CONFIG_PATH
func Path() string {
	configPath := os.Getenv("RSA_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	return filepath.Join(configPath, ConfigFileName)
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	config.configFilePath = Path()

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var file fileConfig
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&file)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", config.configFilePath, err)
	}

	if err := config.applyEnvConfig(); err != nil {
		return nil, err
	}

	return config, nil
}

func attributeNames() []string {
	return []string{
		"key_size", "max_attempts", "max_draws", "max_candidates",
		"certainty", "acceptance_policy", "log_level",
		"audit_enabled", "audit_database_url",
	}
}

func (c *Config) applyFileConfig(file *fileConfig) {
	if file.KeySize != nil {
		c.KeySize = *file.KeySize
		c.sources["key_size"] = "file"
	}
	if file.MaxAttempts != nil {
		c.MaxAttempts = *file.MaxAttempts
		c.sources["max_attempts"] = "file"
	}
	if file.MaxDraws != nil {
		c.MaxDraws = *file.MaxDraws
		c.sources["max_draws"] = "file"
	}
	if file.MaxCandidates != nil {
		c.MaxCandidates = *file.MaxCandidates
		c.sources["max_candidates"] = "file"
	}
	if file.Certainty != nil {
		c.Certainty = *file.Certainty
		c.sources["certainty"] = "file"
	}
	if file.AcceptancePolicy != nil {
		c.AcceptancePolicy = *file.AcceptancePolicy
		c.sources["acceptance_policy"] = "file"
	}
	if file.LogLevel != nil {
		c.LogLevel = *file.LogLevel
		c.sources["log_level"] = "file"
	}
	if file.AuditEnabled != nil {
		c.AuditEnabled = *file.AuditEnabled
		c.sources["audit_enabled"] = "file"
	}
	if file.AuditDatabaseURL != nil {
		c.AuditDatabaseURL = *file.AuditDatabaseURL
		c.sources["audit_database_url"] = "file"
	}
}

func (c *Config) applyEnvConfig() error {
	ints := []struct {
		env   string
		name  string
		field *int
	}{
		{"RSA_KEY_SIZE", "key_size", &c.KeySize},
		{"RSA_MAX_ATTEMPTS", "max_attempts", &c.MaxAttempts},
		{"RSA_MAX_DRAWS", "max_draws", &c.MaxDraws},
		{"RSA_MAX_CANDIDATES", "max_candidates", &c.MaxCandidates},
		{"RSA_CERTAINTY", "certainty", &c.Certainty},
	}
	for _, v := range ints {
		val := os.Getenv(v.env)
		if val == "" {
			continue
		}
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", v.env, val, err)
		}
		*v.field = i
		c.sources[v.name] = "environment"
	}

	if val := os.Getenv("RSA_ACCEPTANCE_POLICY"); val != "" {
		policy, err := rsa.AcceptancePolicyString(val)
		if err != nil {
			return fmt.Errorf("invalid RSA_ACCEPTANCE_POLICY: %w", err)
		}
		c.AcceptancePolicy = policy
		c.sources["acceptance_policy"] = "environment"
	}
	if val := os.Getenv("RSA_LOG_LEVEL"); val != "" {
		c.LogLevel = val
		c.sources["log_level"] = "environment"
	}
	if val := os.Getenv("RSA_AUDIT_ENABLED"); val != "" {
		c.AuditEnabled = val == "true" || val == "1"
		c.sources["audit_enabled"] = "environment"
	}
	if val := os.Getenv("AUDIT_DATABASE_URL"); val != "" {
		c.AuditDatabaseURL = val
		c.sources["audit_database_url"] = "environment"
	}
	return nil
}

// ConfigFilePath returns the path to the config file
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.KeySize < rsa.MinKeySize || c.KeySize%2 != 0 {
		return fmt.Errorf("invalid key_size %d: must be even and at least %d", c.KeySize, rsa.MinKeySize)
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("invalid max_attempts %d: must be positive", c.MaxAttempts)
	}
	if c.MaxDraws <= 0 {
		return fmt.Errorf("invalid max_draws %d: must be positive", c.MaxDraws)
	}
	if c.MaxCandidates <= 0 {
		return fmt.Errorf("invalid max_candidates %d: must be positive", c.MaxCandidates)
	}
	if c.Certainty < 0 {
		return fmt.Errorf("invalid certainty %d: must not be negative", c.Certainty)
	}
	if !c.AcceptancePolicy.IsAAcceptancePolicy() {
		return fmt.Errorf("invalid acceptance_policy %d", c.AcceptancePolicy)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	return nil
}

// Level returns the parsed log level, falling back to info
func (c *Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// SamplerOptions returns the sampling bounds as sampler options
func (c *Config) SamplerOptions() []sampling.Option {
	return []sampling.Option{
		sampling.WithMaxDraws(c.MaxDraws),
		sampling.WithMaxCandidates(c.MaxCandidates),
		sampling.WithCertainty(c.Certainty),
	}
}

// GeneratorOptions returns the generator settings as generator options. The
// sampler is built from SamplerOptions plus extra.
func (c *Config) GeneratorOptions(extra ...sampling.Option) []rsa.GeneratorOption {
	return []rsa.GeneratorOption{
		rsa.WithSampler(sampling.New(append(c.SamplerOptions(), extra...)...)),
		rsa.WithMaxAttempts(c.MaxAttempts),
		rsa.WithAcceptancePolicy(c.AcceptancePolicy),
	}
}

// Attributes returns all configuration attributes with their values and sources
func (c *Config) Attributes() []Attribute {
	return []Attribute{
		{Name: "key_size", Value: strconv.Itoa(c.KeySize), Source: c.Source("key_size")},
		{Name: "max_attempts", Value: strconv.Itoa(c.MaxAttempts), Source: c.Source("max_attempts")},
		{Name: "max_draws", Value: strconv.Itoa(c.MaxDraws), Source: c.Source("max_draws")},
		{Name: "max_candidates", Value: strconv.Itoa(c.MaxCandidates), Source: c.Source("max_candidates")},
		{Name: "certainty", Value: strconv.Itoa(c.Certainty), Source: c.Source("certainty")},
		{Name: "acceptance_policy", Value: c.AcceptancePolicy.String(), Source: c.Source("acceptance_policy")},
		{Name: "log_level", Value: c.LogLevel, Source: c.Source("log_level")},
		{Name: "audit_enabled", Value: strconv.FormatBool(c.AuditEnabled), Source: c.Source("audit_enabled")},
		{Name: "audit_database_url", Value: redactURL(c.AuditDatabaseURL), Source: c.Source("audit_database_url")},
	}
}

// FormatText returns a text representation of the configuration
func (c *Config) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-25s %-30s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-25s %-30s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-25s %-30s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *Config) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// redactURL hides the password of a database URL
func redactURL(raw string) string {
	at := strings.LastIndex(raw, "@")
	scheme := strings.Index(raw, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return raw
	}
	userinfo := raw[scheme+3 : at]
	if colon := strings.Index(userinfo, ":"); colon >= 0 {
		return raw[:scheme+3] + userinfo[:colon] + ":xxxxx" + raw[at:]
	}
	return raw
}
