package mmqa

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ToJSON returns the report as a generic JSON object with exactly the keys
// duplicates, file_count and total_bytes
func (r ScanResult) ToJSON() map[string]any {
	duplicates := r.Duplicates
	if duplicates == nil {
		duplicates = [][]string{}
	}
	return map[string]any{
		"duplicates":  duplicates,
		"file_count":  r.FileCount,
		"total_bytes": r.TotalBytes,
	}
}

// MarshalReport encodes a result as pretty-printed JSON with 2-space indent and sorted keys.
// The returned bytes carry no trailing newline.
func MarshalReport(result ScanResult) ([]byte, error) {
	if result.Duplicates == nil {
		result.Duplicates = [][]string{}
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// ParseReport decodes a report produced by MarshalReport
func ParseReport(data []byte) (ScanResult, error) {
	var result ScanResult
	if err := json.Unmarshal(data, &result); err != nil {
		return ScanResult{}, fmt.Errorf("failed to decode report: %w", err)
	}
	if result.Duplicates == nil {
		result.Duplicates = [][]string{}
	}
	return result, nil
}

// WriteReport saves an encoded report to path, creating parent directories as needed.
// The report is written to a temporary file in the target directory and renamed
// into place, so an existing report is never left half-written.
// Any failure is returned as an *OutputWriteError.
func WriteReport(path string, data []byte) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return &OutputWriteError{Path: path, Err: err}
	}

	dir := filepath.Dir(absPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &OutputWriteError{Path: absPath, Err: err}
	}

	tempFile, err := os.CreateTemp(dir, "."+filepath.Base(absPath)+".tmp-*")
	if err != nil {
		return &OutputWriteError{Path: absPath, Err: err}
	}
	tempPath := tempFile.Name()

	if err := writeReportFile(tempFile, data); err != nil {
		tempFile.Close()
		os.Remove(tempPath)
		return &OutputWriteError{Path: absPath, Err: err}
	}
	if err := tempFile.Close(); err != nil {
		os.Remove(tempPath)
		return &OutputWriteError{Path: absPath, Err: fmt.Errorf("failed to close report file: %w", err)}
	}

	if err := os.Chmod(tempPath, 0644); err != nil {
		os.Remove(tempPath)
		return &OutputWriteError{Path: absPath, Err: err}
	}
	if err := os.Rename(tempPath, absPath); err != nil {
		os.Remove(tempPath)
		return &OutputWriteError{Path: absPath, Err: fmt.Errorf("failed to move report into place: %w", err)}
	}
	return nil
}
