package main

import (
	"fmt"
	"strings"

	mmqa "github.com/mmqa-toolkit/mmqa/pkg"
	"github.com/spf13/cobra"
)

// scanOptions defines the scan command parameters
type scanOptions struct {
	root       string
	out        string
	extensions string
}

func (a *app) scanCommand() *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a dataset directory and produce a dedupe report",
		Long: `Scan walks --root recursively, hashes every regular file and prints a JSON report
of byte-identical files. For example:

	mmqa scan --root ./dataset --extensions jpg,png --out reports/dedupe.json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("extensions") {
				opts.extensions = a.cfg.GetScanConfig().Extensions
			}
			return a.runScan(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.root, "root", "", "root directory to scan (required)")
	flags.StringVar(&opts.out, "out", "", "output file path (default: stdout)")
	flags.StringVar(&opts.extensions, "extensions", "", "comma-separated file extensions to scan (default: all)")

	return cmd
}

func (a *app) runScan(cmd *cobra.Command, opts *scanOptions) error {
	a.started = true

	root, err := mmqa.ValidateDirectoryPath(opts.root)
	if err != nil {
		return err
	}
	a.logger.Info("Scanning directory", "root", root)

	exts := mmqa.ParseExtensionList(opts.extensions)
	if exts.Active() {
		a.logger.Info("Filtering extensions", "extensions", strings.Join(exts.Sorted(), ", "))
	}

	scanner, err := mmqa.NewScannerFromConfig(a.cfg, a.logger)
	if err != nil {
		return err
	}

	result, stats, err := scanner.ScanWithStats(cmd.Context(), root, exts)
	if err != nil {
		return err
	}
	a.logger.Info("Scan complete",
		"files", result.FileCount,
		"duplicate_groups", len(result.Duplicates),
		"bytes", mmqa.FormatCount(result.TotalBytes),
		"skipped", stats.Skipped,
		"algorithm", stats.Algorithm,
		"elapsed", stats.Elapsed)

	data, err := mmqa.MarshalReport(result)
	if err != nil {
		return err
	}

	if opts.out == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	outPath := a.cfg.ResolveOutputPath(opts.out)
	if err := mmqa.WriteReport(outPath, data); err != nil {
		a.logger.Error("Failed to write output file", "path", outPath, "error", err)
		return err
	}
	a.logger.Info("Report saved", "path", outPath)
	return nil
}
