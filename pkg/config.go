package mmqa

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-ini/ini"
)

// UserConfigFile is the config file looked up under the XDG config directories
const UserConfigFile = "mmqa/config.ini"

// Config represents the mmqa configuration. It is read-only with respect to
// disk: loading never creates or rewrites the file.
type Config struct {
	configPath string
	ini        *ini.File
}

// HashConfig represents hash algorithm configuration
type HashConfig struct {
	Default string // Default hash algorithm
}

// PerformanceConfig represents performance-related configuration
type PerformanceConfig struct {
	HashBuffer string // Read chunk size for hashing (default: "2M")
}

// VerboseConfig represents verbosity configuration
type VerboseConfig struct {
	Level string // Log level name: debug, info, warning, error, critical
	Debug string // Debug flags (comma-separated)
}

// OutputConfig represents output configuration
type OutputConfig struct {
	Dir string // Base directory for relative report paths; empty means the working directory
}

// ScanConfig represents scan defaults
type ScanConfig struct {
	Extensions string // Default extension filter (comma-separated)
	IgnoreFile string // Regex ignore file; empty means no patterns
}

// AllConfig represents all configuration options
type AllConfig struct {
	Hash        *HashConfig
	Performance *PerformanceConfig
	Verbose     *VerboseConfig
	Output      *OutputConfig
	Scan        *ScanConfig
}

// LoadConfig loads configuration from an INI file.
// An empty path returns the built-in defaults; a named file that is missing or
// malformed is a *ConfigurationError.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	if _, err := os.Stat(configPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ConfigurationError{Field: "config", Value: configPath, Err: fmt.Errorf("config file not found")}
		}
		return nil, &ConfigurationError{Field: "config", Value: configPath, Err: err}
	}

	iniFile, err := ini.Load(configPath)
	if err != nil {
		return nil, &ConfigurationError{Field: "config", Value: configPath, Err: fmt.Errorf("failed to load config file: %w", err)}
	}

	return &Config{
		configPath: configPath,
		ini:        iniFile,
	}, nil
}

// FindConfigFile searches $XDG_CONFIG_HOME and $XDG_CONFIG_DIRS for UserConfigFile
func FindConfigFile() (string, bool) {
	path, err := xdg.SearchConfigFile(UserConfigFile)
	if err != nil {
		return "", false
	}
	return path, true
}

// DefaultConfig returns a configuration holding only the built-in defaults
func DefaultConfig() *Config {
	cfg := &Config{ini: ini.Empty()}
	cfg.setDefaults()
	return cfg
}

// setDefaults sets default configuration values
func (c *Config) setDefaults() {
	c.ini.Section("filehash").Key("default").SetValue(DefaultHashAlgorithm)
	c.ini.Section("performance").Key("hash_buffer").SetValue(DefaultHashBuffer)
	c.ini.Section("verbose").Key("level").SetValue("warning")
	c.ini.Section("verbose").Key("debug").SetValue("")
	c.ini.Section("output").Key("dir").SetValue("")
	c.ini.Section("scan").Key("extensions").SetValue("")
	c.ini.Section("scan").Key("ignore_file").SetValue("")
}

// ConfigPath returns the file the configuration was loaded from, or "" for defaults
func (c *Config) ConfigPath() string {
	return c.configPath
}

// stringValue returns section.key when present and non-empty, else fallback
func (c *Config) stringValue(section, key, fallback string) string {
	if !c.ini.HasSection(section) {
		return fallback
	}
	s := c.ini.Section(section)
	if !s.HasKey(key) {
		return fallback
	}
	if value := strings.TrimSpace(s.Key(key).String()); value != "" {
		return value
	}
	return fallback
}

// GetHashConfig returns the hash configuration
func (c *Config) GetHashConfig() *HashConfig {
	return &HashConfig{
		Default: c.stringValue("filehash", "default", DefaultHashAlgorithm),
	}
}

// GetPerformanceConfig returns the performance configuration
func (c *Config) GetPerformanceConfig() *PerformanceConfig {
	return &PerformanceConfig{
		HashBuffer: c.stringValue("performance", "hash_buffer", DefaultHashBuffer),
	}
}

// GetVerboseConfig returns the verbose configuration
func (c *Config) GetVerboseConfig() *VerboseConfig {
	return &VerboseConfig{
		Level: c.stringValue("verbose", "level", "warning"),
		Debug: c.stringValue("verbose", "debug", ""),
	}
}

// GetOutputConfig returns the output configuration
func (c *Config) GetOutputConfig() *OutputConfig {
	return &OutputConfig{
		Dir: c.stringValue("output", "dir", ""),
	}
}

// GetScanConfig returns the scan defaults. A relative ignore_file is taken
// relative to the directory holding the config file.
func (c *Config) GetScanConfig() *ScanConfig {
	scanConfig := &ScanConfig{
		Extensions: c.stringValue("scan", "extensions", ""),
		IgnoreFile: c.stringValue("scan", "ignore_file", ""),
	}
	if scanConfig.IgnoreFile != "" && !filepath.IsAbs(scanConfig.IgnoreFile) && c.configPath != "" {
		scanConfig.IgnoreFile = filepath.Join(filepath.Dir(c.configPath), scanConfig.IgnoreFile)
	}
	return scanConfig
}

// GetAllConfig returns all configuration options
func (c *Config) GetAllConfig() *AllConfig {
	return &AllConfig{
		Hash:        c.GetHashConfig(),
		Performance: c.GetPerformanceConfig(),
		Verbose:     c.GetVerboseConfig(),
		Output:      c.GetOutputConfig(),
		Scan:        c.GetScanConfig(),
	}
}

// ResolveOutputPath places a relative report path under the configured output directory.
// Absolute paths, and any path when no directory is configured, are returned unchanged.
func (c *Config) ResolveOutputPath(out string) string {
	if out == "" || filepath.IsAbs(out) {
		return out
	}
	if dir := c.GetOutputConfig().Dir; dir != "" {
		return filepath.Join(dir, out)
	}
	return out
}

// ApplyOverrides applies command-line overrides to the configuration
// Accepts strings like "default:blake3", "level:info", "debug:walk", "dir:reports"
func (c *Config) ApplyOverrides(overrides []string) error {
	for _, override := range overrides {
		parts := strings.SplitN(override, ":", 2)
		if len(parts) != 2 {
			return &ConfigurationError{Field: "override", Value: override, Err: fmt.Errorf("expected 'key:value'")}
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch key {
		case "default":
			c.ini.Section("filehash").Key("default").SetValue(value)
		case "hash_buffer":
			c.ini.Section("performance").Key("hash_buffer").SetValue(value)
		case "level":
			c.ini.Section("verbose").Key("level").SetValue(value)
		case "debug":
			c.ini.Section("verbose").Key("debug").SetValue(value)
		case "dir":
			c.ini.Section("output").Key("dir").SetValue(value)
		case "extensions":
			c.ini.Section("scan").Key("extensions").SetValue(value)
		case "ignore_file":
			c.ini.Section("scan").Key("ignore_file").SetValue(value)
		default:
			return &ConfigurationError{
				Field: "override",
				Value: override,
				Err:   fmt.Errorf("unsupported key '%s' (supported: default, hash_buffer, level, debug, dir, extensions, ignore_file)", key),
			}
		}
	}

	return nil
}

// Validate checks every value a scan depends on
func (c *Config) Validate() error {
	all := c.GetAllConfig()

	if err := ValidateHashAlgorithm(all.Hash.Default); err != nil {
		return &ConfigurationError{Field: "filehash.default", Value: all.Hash.Default, Err: err}
	}
	if err := ValidateHashBuffer(all.Performance.HashBuffer); err != nil {
		return &ConfigurationError{Field: "performance.hash_buffer", Value: all.Performance.HashBuffer, Err: err}
	}
	if err := ValidateLogLevel(all.Verbose.Level); err != nil {
		return &ConfigurationError{Field: "verbose.level", Value: all.Verbose.Level, Err: err}
	}
	if all.Scan.IgnoreFile != "" {
		if _, err := os.Stat(all.Scan.IgnoreFile); err != nil {
			return &ConfigurationError{Field: "scan.ignore_file", Value: all.Scan.IgnoreFile, Err: err}
		}
	}

	return nil
}

// ValidateHashAlgorithm validates that a hash algorithm is supported
func ValidateHashAlgorithm(algorithm string) error {
	if _, ok := HashTypeFromName(algorithm); !ok {
		return fmt.Errorf("unsupported hash algorithm: %s (supported: sha256, sha3-256, blake3)", algorithm)
	}
	return nil
}

// ValidateLogLevel validates a log level name
func ValidateLogLevel(level string) error {
	_, err := ParseLogLevel(level)
	return err
}

// ValidateHashBuffer validates that the hash buffer size parses and is reasonable
func ValidateHashBuffer(size string) error {
	n, err := ParseHumanSize(size)
	if err != nil {
		return err
	}
	if n > 1024*1024*1024 {
		return fmt.Errorf("hash buffer should not exceed 1G, got: %s", size)
	}
	return nil
}
