package mmqa

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// IgnoreManager holds regex patterns for paths a scan should not enumerate.
// An IgnoreManager without patterns ignores nothing.
type IgnoreManager struct {
	ignorePath string
	patterns   []*regexp.Regexp
	loaded     bool
}

// NewIgnoreManager creates an ignore manager reading from ignorePath.
// An empty ignorePath yields a manager with no patterns.
func NewIgnoreManager(ignorePath string) *IgnoreManager {
	return &IgnoreManager{
		ignorePath: ignorePath,
		patterns:   make([]*regexp.Regexp, 0),
		loaded:     ignorePath == "",
	}
}

// LoadIgnorePatterns loads ignore patterns from the ignore file.
// Unlike a missing optional config, a named ignore file that cannot be read is an error.
func (im *IgnoreManager) LoadIgnorePatterns() error {
	if im.loaded {
		return nil
	}

	file, err := os.Open(im.ignorePath)
	if err != nil {
		return fmt.Errorf("failed to open ignore file: %w", err)
	}
	defer file.Close()

	if err := im.readPatterns(file); err != nil {
		return fmt.Errorf("error reading ignore file %s: %w", im.ignorePath, err)
	}

	im.loaded = true
	return nil
}

// readPatterns parses one Go regexp per line; blank lines and # comments are skipped
func (im *IgnoreManager) readPatterns(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if err := im.AddPattern(line); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
	}

	return scanner.Err()
}

// ShouldIgnore checks a forward-slash relative path against the patterns.
// Directories are also tested with a trailing slash so "cache/.*" prunes "cache".
func (im *IgnoreManager) ShouldIgnore(relativePath string, isDir bool) bool {
	if len(im.patterns) == 0 {
		return false
	}

	for _, pattern := range im.patterns {
		if pattern.MatchString(relativePath) {
			return true
		}
		if isDir && pattern.MatchString(relativePath+"/") {
			return true
		}
	}

	return false
}

// AddPattern adds a new ignore pattern
func (im *IgnoreManager) AddPattern(patternStr string) error {
	pattern, err := regexp.Compile(patternStr)
	if err != nil {
		return fmt.Errorf("invalid regex pattern: %s - %w", patternStr, err)
	}

	im.patterns = append(im.patterns, pattern)
	return nil
}

// GetPatterns returns all loaded patterns
func (im *IgnoreManager) GetPatterns() []*regexp.Regexp {
	return im.patterns
}
