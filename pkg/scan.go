package mmqa

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// ScanStats carries informational counters that are not part of the report
type ScanStats struct {
	Root        string
	Algorithm   string
	Discovered  int // regular files found by the traversal
	Filtered    int // files left out by the extension filter
	Hashed      int
	Skipped     int // files that could not be stat'ed or read
	SkippedDirs int
	Ignored     int
	Groups      []DuplicateGroup
	Elapsed     time.Duration
}

// Option configures a Scanner
type Option func(*Scanner)

// WithLogger sets the diagnostic sink. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithHasher replaces the default SHA-256 hasher
func WithHasher(hasher *Hasher) Option {
	return func(s *Scanner) {
		if hasher != nil {
			s.hasher = hasher
		}
	}
}

// WithIgnoreManager prunes paths matching the manager's patterns
func WithIgnoreManager(ignore *IgnoreManager) Option {
	return func(s *Scanner) {
		s.ignore = ignore
	}
}

// WithDebugFlags enables per-entry diagnostics ("walk", "hash")
func WithDebugFlags(flags DebugFlags) Option {
	return func(s *Scanner) {
		s.debug = flags
	}
}

// Scanner finds byte-identical files below a directory.
// A Scanner holds configuration only; every Scan call starts from scratch.
type Scanner struct {
	logger *slog.Logger
	hasher *Hasher
	ignore *IgnoreManager
	debug  DebugFlags
}

// NewScanner creates a scanner with SHA-256 hashing and no logging
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{
		logger: discardLogger(),
		hasher: NewHasher(nil, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.debug.Enabled("hash") {
		s.hasher = s.hasher.withLogger(s.logger)
	}
	return s
}

// NewScannerFromConfig creates a scanner using the hash and scan settings of cfg
func NewScannerFromConfig(cfg *Config, logger *slog.Logger) (*Scanner, error) {
	hashConfig := cfg.GetHashConfig()
	algorithm, err := GetHashAlgorithm(hashConfig.Default)
	if err != nil {
		return nil, &ConfigurationError{Field: "filehash.default", Value: hashConfig.Default, Err: err}
	}

	performanceConfig := cfg.GetPerformanceConfig()
	bufferSize, err := ParseHumanSize(performanceConfig.HashBuffer)
	if err != nil {
		return nil, &ConfigurationError{Field: "performance.hash_buffer", Value: performanceConfig.HashBuffer, Err: err}
	}

	scanConfig := cfg.GetScanConfig()
	ignore := NewIgnoreManager(scanConfig.IgnoreFile)
	if err := ignore.LoadIgnorePatterns(); err != nil {
		return nil, &ConfigurationError{Field: "scan.ignore_file", Value: scanConfig.IgnoreFile, Err: err}
	}

	scanner := NewScanner(
		WithLogger(logger),
		WithHasher(NewHasher(algorithm, bufferSize)),
		WithIgnoreManager(ignore),
		WithDebugFlags(ParseDebugFlags(cfg.GetVerboseConfig().Debug)),
	)
	if patterns := ignore.GetPatterns(); len(patterns) > 0 {
		scanner.logger.Debug("Loaded ignore patterns", "file", scanConfig.IgnoreFile, "count", len(patterns))
	}
	return scanner, nil
}

// Scan hashes every regular file below root and groups identical ones.
// extensions restricts the scan to those file types; nil or empty scans everything.
// root is expected to be an existing directory (see ValidateDirectoryPath).
func (s *Scanner) Scan(ctx context.Context, root string, extensions ExtensionSet) (ScanResult, error) {
	result, _, err := s.ScanWithStats(ctx, root, extensions)
	return result, err
}

// ScanWithStats is Scan plus the informational counters
func (s *Scanner) ScanWithStats(ctx context.Context, root string, extensions ExtensionSet) (ScanResult, ScanStats, error) {
	canonical, err := CanonicalRoot(root)
	if err != nil {
		s.logger.Error("Cannot resolve scan root", "root", root, "error", err)
		return ScanResult{}, ScanStats{Root: root}, &DirectoryAccessError{Path: root, Err: err}
	}

	result, stats, err := s.ScanFS(ctx, osfs.New(canonical), extensions)
	stats.Root = canonical
	return result, stats, err
}

// ScanFS scans an already-rooted filesystem; reported paths are relative to its root
func (s *Scanner) ScanFS(ctx context.Context, fsys billy.Filesystem, extensions ExtensionSet) (ScanResult, ScanStats, error) {
	start := time.Now()
	extensions = extensions.normalized()
	stats := ScanStats{Root: fsys.Root(), Algorithm: s.hasher.Algorithm().Name}
	if err := ctx.Err(); err != nil {
		return ScanResult{}, stats, err
	}

	if extensions.Active() {
		s.logger.Debug("Filtering extensions", "extensions", extensions.Sorted())
	}

	entries, walkStats, err := NewWalker(fsys, s.ignore, s.logger, s.debug).Walk()
	if err != nil {
		s.logger.Error("Permission denied accessing directory", "error", err)
		return ScanResult{}, stats, err
	}
	stats.Discovered = len(entries)
	stats.SkippedDirs = walkStats.SkippedDirs
	stats.Ignored = walkStats.Ignored

	outcomes, err := s.hashEntries(ctx, fsys, entries, extensions, &stats)
	if err != nil {
		return ScanResult{}, stats, err
	}

	result, groups := foldOutcomes(outcomes)
	stats.Groups = groups
	stats.Elapsed = time.Since(start)

	if stats.Skipped > 0 {
		s.logger.Info("Skipped files due to errors", "count", stats.Skipped)
	}
	if stats.SkippedDirs > 0 {
		s.logger.Info("Skipped unreadable directories", "count", stats.SkippedDirs)
	}
	s.logger.Debug("Found duplicate groups", "groups", len(result.Duplicates))
	for _, group := range groups {
		s.logger.Debug("Duplicate group", "hash", group.Hash, "count", group.Count, "first", group.Files[0])
	}

	return result, stats, nil
}

// hashEntries applies the extension filter and hashes the survivors in path order.
// Per-file failures become skipped outcomes; only cancellation of ctx is returned.
func (s *Scanner) hashEntries(ctx context.Context, fsys billy.Filesystem, entries []FileEntry, extensions ExtensionSet, stats *ScanStats) ([]FileOutcome, error) {
	outcomes := make([]FileOutcome, 0, len(entries))

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !extensions.Allows(entry.RelPath) {
			stats.Filtered++
			continue
		}

		outcome := s.hashEntry(fsys, entry)
		if outcome.Skipped() {
			s.logger.Warn("Skipping file", "path", entry.RelPath, "error", outcome.Err)
			stats.Skipped++
		} else {
			stats.Hashed++
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

// hashEntry stats and hashes a single file
func (s *Scanner) hashEntry(fsys billy.Filesystem, entry FileEntry) FileOutcome {
	nativePath := filepath.FromSlash(entry.RelPath)

	info, err := fsys.Stat(nativePath)
	if err != nil {
		return FileOutcome{RelPath: entry.RelPath, Err: &FileAccessError{Op: "stat", Path: entry.RelPath, Err: err}}
	}

	digest, err := s.hasher.HashFile(fsys, nativePath)
	if err != nil {
		return FileOutcome{RelPath: entry.RelPath, Err: err}
	}

	if s.debug.Enabled("hash") {
		s.logger.Debug("Hashed file", "path", entry.RelPath, "size", info.Size(), "digest", digest)
	}

	return FileOutcome{
		RelPath: entry.RelPath,
		Size:    info.Size(),
		Digest:  digest,
	}
}
