package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/subtrack/internal/pipeline"
)

var flagImportRate bool

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import subscriptions from an export or a browser storage dump",
	Long: "Import records from a JSON or YAML export, a JSON array, or a browser " +
		"localStorage dump. A directory is scanned for .json/.yaml files. " +
		"Records whose id already exists are skipped.",
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&flagImportRate, "with-rate", true, "Also import the conversion rate when the file has one")
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	loaded, err := pipeline.LoadImports(args[0], nil)
	if err != nil {
		return err
	}
	if loaded.TotalFiles == 0 {
		return fmt.Errorf("no .json or .yaml files in %s", args[0])
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	var added, skipped int
	for _, res := range loaded.Files {
		if res.Err != nil {
			s.log.Warn("import failed", zap.String("path", res.Path), zap.Error(res.Err))
			continue
		}
		n, rejected := s.tracker.Import(res.Records)
		added += n
		skipped += len(res.Records) - n
		if rejected > 0 {
			s.log.Warn("skipped invalid records", zap.String("path", res.Path), zap.Int("count", rejected))
		}

		if !flagQuiet {
			fmt.Printf("  %s (%s): %d new\n", res.Path, res.Format, n)
		}
		if flagImportRate && res.Rate != "" && !s.tracker.SetRate(res.Rate) {
			s.log.Debug("ignoring invalid rate", zap.String("path", res.Path), zap.String("rate", res.Rate))
		}
	}
	skipped += loaded.ParseErrors

	fmt.Printf("  Imported %d subscriptions", added)
	if skipped > 0 {
		fmt.Printf(", skipped %d", skipped)
	}
	if loaded.FileErrors > 0 {
		fmt.Printf(", %d files failed", loaded.FileErrors)
	}
	fmt.Println()
	return nil
}
