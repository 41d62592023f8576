package mmqa

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrorCode classifies an error for the CLI and for logs.
// Codes are plain strings so they read well in structured log output.
type ErrorCode string

const (
	// CodeNotFound indicates a path does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeForbidden indicates the process lacks permission for the path.
	CodeForbidden ErrorCode = "FORBIDDEN"

	// CodeInvalidInput indicates a path or argument is unusable as given.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeInvalidConfig indicates a configuration error prevents the operation.
	CodeInvalidConfig ErrorCode = "INVALID_CONFIGURATION"

	// CodeIO indicates a read or write failed part way.
	CodeIO ErrorCode = "IO_ERROR"

	// CodeInternal indicates an unexpected failure.
	CodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Sentinel errors for root validation
var (
	ErrRootNotFound = errors.New("directory not found")
	ErrNotDirectory = errors.New("path is not a directory")
)

// codeFor maps an underlying filesystem error onto an ErrorCode
func codeFor(err error) ErrorCode {
	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, ErrRootNotFound):
		return CodeNotFound
	case errors.Is(err, fs.ErrPermission):
		return CodeForbidden
	case errors.Is(err, ErrNotDirectory):
		return CodeInvalidInput
	default:
		return CodeIO
	}
}

// ConfigurationError reports an unusable root, flag or config value.
// The scan never starts when one of these is returned.
type ConfigurationError struct {
	Field string // flag or config key at fault, e.g. "root" or "filehash.default"
	Value string
	Err   error
}

func (e *ConfigurationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Code returns the error classification
func (e *ConfigurationError) Code() ErrorCode {
	if errors.Is(e.Err, ErrRootNotFound) || errors.Is(e.Err, ErrNotDirectory) {
		return codeFor(e.Err)
	}
	return CodeInvalidConfig
}

// DirectoryAccessError reports that a directory could not be listed.
// Returned for the scan root only; subdirectories are skipped instead.
type DirectoryAccessError struct {
	Path string
	Err  error
}

func (e *DirectoryAccessError) Error() string {
	return fmt.Sprintf("cannot list directory %s: %v", e.Path, e.Err)
}

func (e *DirectoryAccessError) Unwrap() error { return e.Err }

// Code returns the error classification
func (e *DirectoryAccessError) Code() ErrorCode { return codeFor(e.Err) }

// FileAccessError reports a file that could not be opened, stat'ed or fully read
type FileAccessError struct {
	Op   string // "open", "stat" or "read"
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("failed to %s file %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// Code returns the error classification
func (e *FileAccessError) Code() ErrorCode { return codeFor(e.Err) }

// OutputWriteError reports that a finished report could not be saved
type OutputWriteError struct {
	Path string
	Err  error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("scan completed but the report could not be saved to %s: %v", e.Path, e.Err)
}

func (e *OutputWriteError) Unwrap() error { return e.Err }

// Code returns the error classification
func (e *OutputWriteError) Code() ErrorCode { return codeFor(e.Err) }

// ErrorCodeOf returns the classification of err, or CodeInternal for
// errors that are not part of the taxonomy
func ErrorCodeOf(err error) ErrorCode {
	var coded interface{ Code() ErrorCode }
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return CodeInternal
}
