//go:build !linux

package mmqa

import (
	"fmt"
	"os"
)

// writeReportFile writes data and a trailing newline, then syncs the file
func writeReportFile(file *os.File, data []byte) error {
	if _, err := file.Write(append(append([]byte{}, data...), '\n')); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync report file: %w", err)
	}
	return nil
}
