//go:build !unix

package mmqa

import (
	"errors"
	"io"
	"os"
)

// checkListable opens the directory and reads one entry
func checkListable(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
