package mmqa

import (
	"strings"

	zcsl "github.com/mattkeenan/zerocopyskiplist"
)

// FileEntry is a regular file found by a traversal
type FileEntry struct {
	RelPath string // forward-slash path relative to the scan root
	Size    int64  // size seen at discovery time
}

// fileIndex keeps traversal results ordered by relative path
type fileIndex struct {
	skiplist *zcsl.ZeroCopySkiplist[FileEntry, string, string]
}

// newFileIndex creates an empty path-ordered index
func newFileIndex(maxLevels int) *fileIndex {
	if maxLevels < 8 {
		maxLevels = 16 // reasonable default
	}

	getKeyFromItem := func(entry *FileEntry) string {
		return entry.RelPath
	}

	getItemSize := func(entry *FileEntry) int {
		return len(entry.RelPath) + 8
	}

	// Plain byte-wise comparison gives lexicographic path order
	cmpKey := func(a, b string) int {
		return strings.Compare(a, b)
	}

	return &fileIndex{
		skiplist: zcsl.MakeZeroCopySkiplist[FileEntry, string, string](
			maxLevels,
			getKeyFromItem,
			getItemSize,
			cmpKey,
		),
	}
}

// Insert adds an entry and reports whether the skiplist accepted it
func (fi *fileIndex) Insert(entry *FileEntry) bool {
	return fi.skiplist.Insert(entry, ScanContext)
}

// Length returns the number of entries
func (fi *fileIndex) Length() int {
	return fi.skiplist.Length()
}

// ForEach iterates through all entries in path order; returning false stops
func (fi *fileIndex) ForEach(callback func(*FileEntry) bool) {
	for current := fi.skiplist.First(); current != nil; current = current.Next() {
		if entry := current.Item(); entry != nil {
			if !callback(entry) {
				break
			}
		}
	}
}

// Entries copies the index out as a sorted slice
func (fi *fileIndex) Entries() []FileEntry {
	entries := make([]FileEntry, 0, fi.Length())
	fi.ForEach(func(entry *FileEntry) bool {
		entries = append(entries, *entry)
		return true
	})
	return entries
}
