package mmqa

import (
	"sort"
)

// ScanResult is the outcome of one scan. Fields are declared in alphabetical
// order of their JSON keys so the encoded report has sorted keys.
type ScanResult struct {
	Duplicates [][]string `json:"duplicates"`  // groups of >=2 identical files, largest first
	FileCount  int64      `json:"file_count"`  // files successfully hashed
	TotalBytes int64      `json:"total_bytes"` // summed size of the hashed files
}

// DuplicateGroup represents a group of files with the same hash
type DuplicateGroup struct {
	Hash  string   `json:"hash"`
	Files []string `json:"files"`
	Count int      `json:"count"`
}

// FileOutcome is the per-file result of the hashing stage: either a digest and
// size, or the reason the file was skipped
type FileOutcome struct {
	RelPath string
	Size    int64
	Digest  string
	Err     error
}

// Skipped reports whether the file is excluded from the result
func (o FileOutcome) Skipped() bool {
	return o.Err != nil
}

// foldOutcomes turns per-file outcomes into counts and sorted duplicate groups.
// It is pure: the same outcomes in any order give the same result.
func foldOutcomes(outcomes []FileOutcome) (ScanResult, []DuplicateGroup) {
	var fileCount, totalBytes int64
	hashes := make(map[string][]string)

	for _, outcome := range outcomes {
		if outcome.Skipped() {
			continue
		}
		fileCount++
		totalBytes += outcome.Size
		hashes[outcome.Digest] = append(hashes[outcome.Digest], outcome.RelPath)
	}

	groups := groupDuplicates(hashes)

	duplicates := make([][]string, 0, len(groups))
	for _, group := range groups {
		duplicates = append(duplicates, group.Files)
	}

	return ScanResult{
		Duplicates: duplicates,
		FileCount:  fileCount,
		TotalBytes: totalBytes,
	}, groups
}

// groupDuplicates keeps digests shared by two or more paths. Paths within a group
// are sorted ascending; groups are ordered by size descending, then first path.
func groupDuplicates(hashes map[string][]string) []DuplicateGroup {
	var result []DuplicateGroup
	for hash, paths := range hashes {
		if len(paths) < 2 {
			continue
		}
		files := uniqueSorted(paths)
		if len(files) < 2 {
			continue
		}
		result = append(result, DuplicateGroup{
			Hash:  hash,
			Files: files,
			Count: len(files),
		})
	}

	sortGroups(result)
	return result
}

// sortGroups orders groups by member count descending, ties broken by first path
func sortGroups(groups []DuplicateGroup) {
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Files[0] < groups[j].Files[0]
	})
}

// uniqueSorted returns a sorted copy of paths with repeats removed
func uniqueSorted(paths []string) []string {
	files := make([]string, len(paths))
	copy(files, paths)
	sort.Strings(files)

	out := files[:0]
	for _, file := range files {
		if len(out) > 0 && out[len(out)-1] == file {
			continue
		}
		out = append(out, file)
	}
	return out
}
