// Package mmqa provides directory scanning, content hashing and duplicate detection
// for dataset quality checks.
//
// # Core API
//
// The main entry point is Scanner, which walks a directory tree, hashes every regular
// file and groups byte-identical files:
//
//	scanner := mmqa.NewScanner(mmqa.WithLogger(logger))
//	result, err := scanner.Scan(ctx, "/path/to/dataset", nil)
//	for _, group := range result.Duplicates {
//		fmt.Printf("%d copies: %v\n", len(group), group)
//	}
//
// Restrict the scan to some file types:
//
//	exts := mmqa.ParseExtensionList("jpg, .PNG ,txt")
//	result, err := scanner.Scan(ctx, root, exts)
//
// # Reports
//
// A ScanResult serialises to a stable JSON shape:
//
//	data, err := mmqa.MarshalReport(result)
//	err = mmqa.WriteReport("reports/dedupe.json", data)
//
// # Configuration
//
// Defaults can be loaded from an INI file and adjusted with "key:value" overrides:
//
//	cfg, err := mmqa.LoadConfig("mmqa.ini")
//	err = cfg.ApplyOverrides([]string{"default:blake3"})
//	scanner, err := mmqa.NewScannerFromConfig(cfg, logger)
//
// # Errors
//
// Per-file problems never abort a scan; they are logged and the file is left out of
// the result. Only a failure to list the root surfaces, as a *DirectoryAccessError.
// Validate the root first with ValidateDirectoryPath to get a *ConfigurationError
// for a missing path or a non-directory.
package mmqa
