//go:build linux

package mmqa

import (
	"fmt"

	"github.com/go-git/go-billy/v5"
	"golang.org/x/sys/unix"
)

// adviseSequential tells the kernel the file will be read front to back.
// Files that do not expose a descriptor (in-memory filesystems) are left alone.
func adviseSequential(file billy.File) error {
	fdFile, ok := file.(interface{ Fd() uintptr })
	if !ok {
		return nil
	}
	if err := unix.Fadvise(int(fdFile.Fd()), 0, 0, unix.FADV_SEQUENTIAL); err != nil {
		return fmt.Errorf("fadvise: %w", err)
	}
	return nil
}
