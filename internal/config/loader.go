package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".linkhound"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .linkhound configuration file.
// Every field is optional; zero values leave the built-in default alone.
//
// Design decision: The skip tables live in the config file rather than
// in code so that what gets filtered is data, adjustable per run and
// per test without touching the filter logic.
type File struct {
	// SkipExtensions replaces the default table of non-page file
	// extensions when non-empty. Entries may include the leading dot.
	SkipExtensions []string `yaml:"skipExtensions,omitempty"`

	// SkipProtocols replaces the default table of skipped URI schemes
	// when non-empty. Entries may include the trailing colon.
	SkipProtocols []string `yaml:"skipProtocols,omitempty"`

	// UserAgent overrides the default User-Agent header when non-empty.
	UserAgent string `yaml:"userAgent,omitempty"`

	// Workers overrides the default pool size when positive.
	Workers int `yaml:"workers,omitempty"`

	// MaxCollected overrides the collected-links safety cap when positive.
	MaxCollected int `yaml:"maxCollected,omitempty"`
}

// LoadConfigFile loads overrides from a YAML file.
// If the file does not exist it returns ErrConfigNotFound; callers decide
// whether that matters based on whether the path was explicit.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .linkhound in the current directory
// 3. Look for .linkhound in the user's home directory
//
// Returns the path if found, or the empty string.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// Apply copies the file's non-zero overrides onto a Config.
func (cf *File) Apply(c *Config) {
	if len(cf.SkipExtensions) > 0 {
		c.SkipExtensions = cf.SkipExtensions
	}
	if len(cf.SkipProtocols) > 0 {
		c.SkipProtocols = cf.SkipProtocols
	}
	if cf.UserAgent != "" {
		c.UserAgent = cf.UserAgent
	}
	if cf.Workers > 0 {
		c.Workers = cf.Workers
	}
	if cf.MaxCollected > 0 {
		c.MaxCollected = cf.MaxCollected
	}
}
