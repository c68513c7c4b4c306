// Package config provides loading and parsing of archforge.yaml
// configuration files. The configuration covers model access, session
// storage backends, and generation tuning.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents an archforge.yaml configuration file.
type Config struct {
	// Model access
	Model *ModelConfig `yaml:"model,omitempty"`

	// Session storage
	Session *SessionConfig `yaml:"session,omitempty"`

	// Additional metadata
	Project     string `yaml:"project,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// ModelConfig configures access to the chat-completion endpoint.
type ModelConfig struct {
	// Name is the model identifier sent with each request.
	// Default: gpt-4o-mini
	Name string `yaml:"name,omitempty"`

	// BaseURL is the API root, e.g. "https://api.openai.com/v1".
	BaseURL string `yaml:"base_url,omitempty"`

	// APIKeyEnv names the environment variable holding the API key.
	// The key itself never lives in the file.
	// Default: ARCHFORGE_API_KEY
	APIKeyEnv string `yaml:"api_key_env,omitempty"`

	// Timeout bounds each model call.
	// Format: Go duration string (e.g., "60s", "2m")
	// Default: 120s
	Timeout string `yaml:"timeout,omitempty"`
}

// GetName returns the model name or the default value.
func (m *ModelConfig) GetName() string {
	if m == nil || m.Name == "" {
		return "gpt-4o-mini"
	}
	return m.Name
}

// GetAPIKeyEnv returns the API key environment variable name or the default.
func (m *ModelConfig) GetAPIKeyEnv() string {
	if m == nil || m.APIKeyEnv == "" {
		return "ARCHFORGE_API_KEY"
	}
	return m.APIKeyEnv
}

// GetTimeout parses the timeout string and returns a duration.
// Returns the default value if not set or invalid.
func (m *ModelConfig) GetTimeout() time.Duration {
	if m == nil || m.Timeout == "" {
		return 120 * time.Second
	}
	d, err := time.ParseDuration(m.Timeout)
	if err != nil {
		return 120 * time.Second
	}
	return d
}

// SessionConfig selects and configures the session storage backend.
type SessionConfig struct {
	// Backend is one of "memory", "redis", or "etcd".
	// Default: memory
	Backend string `yaml:"backend,omitempty"`

	// Redis configuration, used when Backend is "redis".
	Redis *RedisConfig `yaml:"redis,omitempty"`

	// Etcd configuration, used when Backend is "etcd".
	Etcd *EtcdConfig `yaml:"etcd,omitempty"`
}

// GetBackend returns the configured backend or the default value.
func (s *SessionConfig) GetBackend() string {
	if s == nil || s.Backend == "" {
		return "memory"
	}
	return s.Backend
}

// RedisConfig configures the Redis session backend.
type RedisConfig struct {
	// URL is a redis connection URL, e.g. "redis://localhost:6379/0".
	URL string `yaml:"url"`

	// KeyPrefix is prepended to every session key.
	// Default: "archforge:graph:"
	KeyPrefix string `yaml:"key_prefix,omitempty"`

	// TTL is the expiry applied to stored sessions. Zero means no expiry.
	// Format: Go duration string (e.g., "24h")
	TTL string `yaml:"ttl,omitempty"`
}

// GetTTL parses the TTL string and returns a duration.
// Returns zero (no expiry) if not set or invalid.
func (r *RedisConfig) GetTTL() time.Duration {
	if r == nil || r.TTL == "" {
		return 0
	}
	d, err := time.ParseDuration(r.TTL)
	if err != nil {
		return 0
	}
	return d
}

// EtcdConfig configures the etcd session backend.
type EtcdConfig struct {
	// Endpoints lists the etcd cluster members.
	Endpoints []string `yaml:"endpoints"`

	// Namespace prefixes every key.
	// Default: "archforge"
	Namespace string `yaml:"namespace,omitempty"`

	// DialTimeout bounds the initial connection.
	// Format: Go duration string (e.g., "5s")
	// Default: 5s
	DialTimeout string `yaml:"dial_timeout,omitempty"`
}

// GetDialTimeout parses the dial timeout string and returns a duration.
// Returns the default value if not set or invalid.
func (e *EtcdConfig) GetDialTimeout() time.Duration {
	if e == nil || e.DialTimeout == "" {
		return 5 * time.Second
	}
	d, err := time.ParseDuration(e.DialTimeout)
	if err != nil {
		return 5 * time.Second
	}
	return d
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.Session != nil {
		switch backend := c.Session.GetBackend(); backend {
		case "memory":
		case "redis":
			if c.Session.Redis == nil || c.Session.Redis.URL == "" {
				return fmt.Errorf("session backend is redis but no redis url is configured")
			}
		case "etcd":
			if c.Session.Etcd == nil || len(c.Session.Etcd.Endpoints) == 0 {
				return fmt.Errorf("session backend is etcd but no endpoints are configured")
			}
		default:
			return fmt.Errorf("unknown session backend %q", backend)
		}
	}
	return nil
}

// Load reads and parses an archforge.yaml file from the given path.
// If the path is a directory, it looks for archforge.yaml or archforge.yml
// in that directory.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	var configPath string
	if info.IsDir() {
		yamlPath := filepath.Join(path, "archforge.yaml")
		if _, err := os.Stat(yamlPath); err == nil {
			configPath = yamlPath
		} else {
			ymlPath := filepath.Join(path, "archforge.yml")
			if _, err := os.Stat(ymlPath); err == nil {
				configPath = ymlPath
			} else {
				return nil, fmt.Errorf("no archforge.yaml or archforge.yml found in %s", path)
			}
		}
	} else {
		configPath = path
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadFromDir searches for archforge.yaml starting from the given directory
// and walking up to parent directories until found or root is reached.
func LoadFromDir(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	for {
		config, err := Load(absDir)
		if err == nil {
			return config, nil
		}

		parent := filepath.Dir(absDir)
		if parent == absDir {
			return nil, fmt.Errorf("no archforge.yaml found in %s or parent directories", dir)
		}
		absDir = parent
	}
}
