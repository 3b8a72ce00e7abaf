package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/subtrack/internal/export"
)

var (
	flagExportFormat string
	flagExportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export subscriptions as json, yaml, csv, markdown or xlsx",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportFormat, "format", "f", "", "Output format (default from -o extension, else json)")
	exportCmd.Flags().StringVarP(&flagExportOutput, "output", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	format, err := exportFormat(flagExportFormat, flagExportOutput)
	if err != nil {
		return err
	}
	if format == export.FormatXLSX && flagExportOutput == "" {
		return fmt.Errorf("xlsx output needs a file, pass -o")
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	t := s.tracker
	snap := export.NewSnapshot(t.Records(), t.Rate(), t.Now())

	var w io.Writer = os.Stdout
	if flagExportOutput != "" {
		f, err := os.Create(flagExportOutput)
		if err != nil {
			return fmt.Errorf("creating %s: %w", flagExportOutput, err)
		}
		defer f.Close()
		w = f
	}

	if err := export.Write(w, format, snap); err != nil {
		return fmt.Errorf("writing %s: %w", format, err)
	}
	if flagExportOutput != "" {
		fmt.Fprintf(os.Stderr, "  Exported %d subscriptions to %s\n", len(snap.Records), flagExportOutput)
	}
	return nil
}

// exportFormat picks the explicit format, then the output extension, then json.
func exportFormat(flag, output string) (export.Format, error) {
	if flag != "" {
		return export.ParseFormat(flag)
	}
	if ext := filepath.Ext(output); ext != "" {
		if f, err := export.ParseFormat(ext); err == nil {
			return f, nil
		}
	}
	return export.FormatJSON, nil
}
