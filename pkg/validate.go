package mmqa

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// ValidateDirectoryPath resolves path to an absolute directory and checks it can be scanned.
// A missing path or a non-directory yields a *ConfigurationError for the "root" field;
// a directory the process may not list yields a *DirectoryAccessError.
func ValidateDirectoryPath(path string) (string, error) {
	if path == "" {
		return "", &ConfigurationError{Field: "root", Err: errors.New("a root directory is required")}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", &ConfigurationError{Field: "root", Value: path, Err: err}
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &ConfigurationError{Field: "root", Value: absPath, Err: ErrRootNotFound}
		}
		return "", &DirectoryAccessError{Path: absPath, Err: err}
	}

	if !info.IsDir() {
		return "", &ConfigurationError{Field: "root", Value: absPath, Err: ErrNotDirectory}
	}

	if err := checkListable(absPath); err != nil {
		return "", &DirectoryAccessError{Path: absPath, Err: err}
	}

	resolved, err := CanonicalRoot(absPath)
	if err != nil {
		return "", &DirectoryAccessError{Path: absPath, Err: err}
	}
	return resolved, nil
}
