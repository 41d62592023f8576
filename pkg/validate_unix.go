//go:build unix

package mmqa

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// checkListable asks the kernel whether the directory can be read and searched
func checkListable(dir string) error {
	if err := unix.Access(dir, unix.R_OK|unix.X_OK); err != nil {
		return fmt.Errorf("access check failed: %w", err)
	}
	return nil
}
