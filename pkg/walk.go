package mmqa

import (
	"io/fs"
	"log/slog"
	"os"

	"github.com/go-git/go-billy/v5"
)

// WalkStats counts what a traversal saw besides the files it returned
type WalkStats struct {
	SkippedDirs int // subdirectories that could not be listed
	Ignored     int // entries pruned by ignore patterns
	Other       int // broken symlinks, symlinked directories, devices, pipes, sockets
}

// Walker enumerates regular files below the root of a billy filesystem
type Walker struct {
	fsys   billy.Filesystem
	ignore *IgnoreManager
	logger *slog.Logger
	debug  DebugFlags
}

// NewWalker creates a walker over fsys. ignore and logger may be nil.
func NewWalker(fsys billy.Filesystem, ignore *IgnoreManager, logger *slog.Logger, debug DebugFlags) *Walker {
	if ignore == nil {
		ignore = NewIgnoreManager("")
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &Walker{fsys: fsys, ignore: ignore, logger: logger, debug: debug}
}

// Walk returns every path under the root that resolves to a regular file, ordered
// lexicographically by relative path. Only a root that cannot be listed is an error
// (*DirectoryAccessError); unreadable subdirectories are logged and skipped.
func (w *Walker) Walk() ([]FileEntry, WalkStats, error) {
	var stats WalkStats

	rootInfos, err := w.fsys.ReadDir(".")
	if err != nil {
		return nil, stats, &DirectoryAccessError{Path: w.rootLabel(), Err: err}
	}

	index := newFileIndex(16)
	w.visit(".", rootInfos, index, &stats)

	return index.Entries(), stats, nil
}

// visit records the entries of one directory and descends into subdirectories
func (w *Walker) visit(dir string, infos []os.FileInfo, index *fileIndex, stats *WalkStats) {
	for _, info := range infos {
		childPath := w.fsys.Join(dir, info.Name())
		relPath := toReportPath(childPath)
		mode := info.Mode()

		if w.ignore.ShouldIgnore(relPath, mode.IsDir()) {
			stats.Ignored++
			continue
		}

		switch {
		case mode.IsDir():
			children, err := w.fsys.ReadDir(childPath)
			if err != nil {
				w.logger.Warn("Skipping unreadable directory", "path", relPath, "error", err)
				stats.SkippedDirs++
				continue
			}
			w.visit(childPath, children, index, stats)

		case mode.IsRegular():
			w.record(index, relPath, info.Size())

		case mode&fs.ModeSymlink != 0:
			// Keep symlinks whose target is a regular file; never descend through them
			target, err := w.fsys.Stat(childPath)
			if err != nil || !target.Mode().IsRegular() {
				if w.debug.Enabled("walk") {
					w.logger.Debug("Skipping symlink", "path", relPath, "error", err)
				}
				stats.Other++
				continue
			}
			w.record(index, relPath, target.Size())

		default:
			stats.Other++
		}
	}
}

func (w *Walker) record(index *fileIndex, relPath string, size int64) {
	if w.debug.Enabled("walk") {
		w.logger.Debug("Found file", "path", relPath, "size", size)
	}
	index.Insert(&FileEntry{RelPath: relPath, Size: size})
}

// rootLabel names the root in errors
func (w *Walker) rootLabel() string {
	if root := w.fsys.Root(); root != "" {
		return root
	}
	return "."
}
