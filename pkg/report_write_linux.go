//go:build linux

package mmqa

import (
	"fmt"
	"os"
	"syscall"

	"github.com/google/vectorio"
)

var reportNewline = []byte("\n")

// writeReportFile writes data and a trailing newline with a single writev call,
// finishing any short write with ordinary writes, then syncs the file
func writeReportFile(file *os.File, data []byte) error {
	iovecs := make([]syscall.Iovec, 0, 2)
	if len(data) > 0 {
		iovecs = append(iovecs, makeIovec(data))
	}
	iovecs = append(iovecs, makeIovec(reportNewline))

	total := len(data) + len(reportNewline)
	nw, err := vectorio.WritevRaw(uintptr(file.Fd()), iovecs)
	if err != nil {
		return fmt.Errorf("failed to write report with vectorio: %w", err)
	}

	if nw < total {
		rest := reportNewline
		if nw < len(data) {
			rest = append(append(make([]byte, 0, total-nw), data[nw:]...), reportNewline...)
		}
		if _, err := file.Write(rest); err != nil {
			return fmt.Errorf("report write incomplete: wrote %d bytes, expected %d: %w", nw, total, err)
		}
	}

	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync report file: %w", err)
	}
	return nil
}

func makeIovec(buf []byte) syscall.Iovec {
	iovec := syscall.Iovec{Base: &buf[0]}
	iovec.SetLen(len(buf))
	return iovec
}
