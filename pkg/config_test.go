package mmqa

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
)

func TestConfigDefaults(t *testing.T) {
	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	all := config.GetAllConfig()
	if all.Hash.Default != "sha256" {
		t.Errorf("Expected default hash algorithm 'sha256', got '%s'", all.Hash.Default)
	}
	if all.Performance.HashBuffer != "2M" {
		t.Errorf("Expected default hash buffer '2M', got '%s'", all.Performance.HashBuffer)
	}
	if all.Verbose.Level != "warning" {
		t.Errorf("Expected default level 'warning', got '%s'", all.Verbose.Level)
	}
	if all.Output.Dir != "" || all.Scan.Extensions != "" || all.Scan.IgnoreFile != "" {
		t.Errorf("Expected empty output/scan defaults, got %+v %+v", all.Output, all.Scan)
	}
	if config.ConfigPath() != "" {
		t.Errorf("Expected no config path for defaults, got '%s'", config.ConfigPath())
	}
	if err := config.Validate(); err != nil {
		t.Errorf("Defaults should validate, got: %v", err)
	}
}

func TestLoadConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "mmqa.ini")
	content := `[filehash]
default = blake3

[performance]
hash_buffer = 512k

[verbose]
level = info
debug = walk

[output]
dir = /srv/reports

[scan]
extensions = jpg,png
ignore_file = mmqa.ignore
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	all := config.GetAllConfig()
	if all.Hash.Default != "blake3" {
		t.Errorf("Expected 'blake3', got '%s'", all.Hash.Default)
	}
	if all.Performance.HashBuffer != "512k" {
		t.Errorf("Expected '512k', got '%s'", all.Performance.HashBuffer)
	}
	if all.Verbose.Level != "info" || all.Verbose.Debug != "walk" {
		t.Errorf("Unexpected verbose config: %+v", all.Verbose)
	}
	if all.Output.Dir != "/srv/reports" {
		t.Errorf("Expected '/srv/reports', got '%s'", all.Output.Dir)
	}
	if all.Scan.Extensions != "jpg,png" {
		t.Errorf("Expected 'jpg,png', got '%s'", all.Scan.Extensions)
	}
	if expected := filepath.Join(tempDir, "mmqa.ignore"); all.Scan.IgnoreFile != expected {
		t.Errorf("Expected ignore file resolved to '%s', got '%s'", expected, all.Scan.IgnoreFile)
	}

	// Loading must not rewrite or add files next to the config
	entries, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the config file in %s, found %d entries", tempDir, len(entries))
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tempDir := t.TempDir()

	_, err := LoadConfig(filepath.Join(tempDir, "missing.ini"))
	var configErr *ConfigurationError
	if !errors.As(err, &configErr) {
		t.Fatalf("Expected *ConfigurationError for missing file, got %v", err)
	}
	if configErr.Field != "config" {
		t.Errorf("Expected field 'config', got '%s'", configErr.Field)
	}

	badPath := filepath.Join(tempDir, "bad.ini")
	if err := os.WriteFile(badPath, []byte("[unterminated\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if _, err := LoadConfig(badPath); !errors.As(err, &configErr) {
		t.Errorf("Expected *ConfigurationError for malformed file, got %v", err)
	}
}

func TestConfigOverrides(t *testing.T) {
	config := DefaultConfig()

	err := config.ApplyOverrides([]string{
		"default:sha3-256",
		"hash_buffer:1M",
		"level:debug",
		"debug:walk,hash",
		"dir:out",
		"extensions:txt",
		"ignore_file:/etc/mmqa.ignore",
	})
	if err != nil {
		t.Fatalf("Failed to apply overrides: %v", err)
	}

	all := config.GetAllConfig()
	if all.Hash.Default != "sha3-256" {
		t.Errorf("Expected hash algorithm 'sha3-256' after override, got '%s'", all.Hash.Default)
	}
	if all.Performance.HashBuffer != "1M" {
		t.Errorf("Expected hash buffer '1M' after override, got '%s'", all.Performance.HashBuffer)
	}
	if all.Verbose.Level != "debug" {
		t.Errorf("Expected level 'debug' after override, got '%s'", all.Verbose.Level)
	}
	if all.Verbose.Debug != "walk,hash" {
		t.Errorf("Expected debug flags 'walk,hash' after override, got '%s'", all.Verbose.Debug)
	}
	if all.Output.Dir != "out" {
		t.Errorf("Expected dir 'out' after override, got '%s'", all.Output.Dir)
	}
	if all.Scan.Extensions != "txt" || all.Scan.IgnoreFile != "/etc/mmqa.ignore" {
		t.Errorf("Unexpected scan config after override: %+v", all.Scan)
	}
}

func TestConfigOverrideErrors(t *testing.T) {
	config := DefaultConfig()

	for _, override := range []string{"nocolon", "format:json", "workers:4"} {
		err := config.ApplyOverrides([]string{override})
		var configErr *ConfigurationError
		if !errors.As(err, &configErr) {
			t.Errorf("Override '%s' should fail with *ConfigurationError, got %v", override, err)
		}
	}
}

func TestResolveOutputPath(t *testing.T) {
	config := DefaultConfig()
	if got := config.ResolveOutputPath("report.json"); got != "report.json" {
		t.Errorf("Expected unchanged path without output dir, got '%s'", got)
	}

	if err := config.ApplyOverrides([]string{"dir:/srv/reports"}); err != nil {
		t.Fatalf("Failed to apply override: %v", err)
	}
	if got := config.ResolveOutputPath("daily/report.json"); got != filepath.Join("/srv/reports", "daily/report.json") {
		t.Errorf("Expected path under output dir, got '%s'", got)
	}
	if got := config.ResolveOutputPath("/abs/report.json"); got != "/abs/report.json" {
		t.Errorf("Expected absolute path unchanged, got '%s'", got)
	}
	if got := config.ResolveOutputPath(""); got != "" {
		t.Errorf("Expected empty path unchanged, got '%s'", got)
	}
}

func TestConfigValidation(t *testing.T) {
	t.Run("HashAlgorithm", func(t *testing.T) {
		testCases := []struct {
			algorithm string
			valid     bool
		}{
			{"sha256", true},
			{"SHA256", true}, // case insensitive
			{"sha3-256", true},
			{"blake3", true},
			{"sha1", false},
			{"md5", false},
			{"", false},
		}

		for _, tc := range testCases {
			err := ValidateHashAlgorithm(tc.algorithm)
			if tc.valid && err != nil {
				t.Errorf("Algorithm '%s' should be valid but got error: %v", tc.algorithm, err)
			}
			if !tc.valid && err == nil {
				t.Errorf("Algorithm '%s' should be invalid but no error returned", tc.algorithm)
			}
		}
	})

	t.Run("LogLevel", func(t *testing.T) {
		testCases := []struct {
			level string
			valid bool
		}{
			{"DEBUG", true},
			{"info", true},
			{"Warning", true},
			{"ERROR", true},
			{"CRITICAL", true},
			{"trace", false},
			{"", false},
		}

		for _, tc := range testCases {
			err := ValidateLogLevel(tc.level)
			if tc.valid && err != nil {
				t.Errorf("Level '%s' should be valid but got error: %v", tc.level, err)
			}
			if !tc.valid && err == nil {
				t.Errorf("Level '%s' should be invalid but no error returned", tc.level)
			}
		}
	})

	t.Run("HashBuffer", func(t *testing.T) {
		testCases := []struct {
			size  string
			valid bool
		}{
			{"2M", true},
			{"64k", true},
			{"4096", true},
			{"2G", false},
			{"0", false},
			{"lots", false},
		}

		for _, tc := range testCases {
			err := ValidateHashBuffer(tc.size)
			if tc.valid && err != nil {
				t.Errorf("Size '%s' should be valid but got error: %v", tc.size, err)
			}
			if !tc.valid && err == nil {
				t.Errorf("Size '%s' should be invalid but no error returned", tc.size)
			}
		}
	})

	t.Run("Validate", func(t *testing.T) {
		config := DefaultConfig()
		if err := config.ApplyOverrides([]string{"ignore_file:/definitely/not/here"}); err != nil {
			t.Fatalf("Failed to apply override: %v", err)
		}
		var configErr *ConfigurationError
		if err := config.Validate(); !errors.As(err, &configErr) || configErr.Field != "scan.ignore_file" {
			t.Errorf("Expected scan.ignore_file error, got %v", err)
		}
	})
}

func TestFindConfigFile(t *testing.T) {
	t.Cleanup(xdg.Reload)
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_CONFIG_DIRS", t.TempDir())
	xdg.Reload()

	if path, ok := FindConfigFile(); ok {
		t.Fatalf("Expected no user config file, found '%s'", path)
	}

	expected := filepath.Join(configHome, UserConfigFile)
	if err := os.MkdirAll(filepath.Dir(expected), 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	if err := os.WriteFile(expected, []byte("[filehash]\ndefault = blake3\n"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	path, ok := FindConfigFile()
	if !ok || path != expected {
		t.Fatalf("Expected '%s', got '%s' (found=%v)", expected, path, ok)
	}
	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load user config: %v", err)
	}
	if algo := config.GetHashConfig().Default; algo != "blake3" {
		t.Errorf("Expected 'blake3' from user config, got '%s'", algo)
	}
}
