package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fintab/statement-recovery/internal/converter"
	"github.com/fintab/statement-recovery/internal/models"
	"github.com/fintab/statement-recovery/internal/writer"
)

var (
	outputFlag string
	formatFlag string

	convertCmd = &cobra.Command{
		Use:   "convert <input.pdf> [input2.pdf ...]",
		Short: "Convert statement PDFs to CSV, XLSX or XML",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := strings.ToLower(formatFlag)
			switch format {
			case "csv", "xlsx", "xml":
			default:
				return fmt.Errorf("unknown format %q: use csv, xlsx or xml", formatFlag)
			}

			for _, inputPath := range args {
				if err := convertFile(inputPath, format, len(args) > 1); err != nil {
					return fmt.Errorf("error processing %s: %w", inputPath, err)
				}
			}
			return nil
		},
	}
)

func init() {
	convertCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output file path (defaults to input filename with the format's extension)")
	convertCmd.Flags().StringVarP(&formatFlag, "format", "f", "csv", "Output format: csv, xlsx or xml")
	rootCmd.AddCommand(convertCmd)
}

func convertFile(inputPath, format string, multipleInputs bool) error {
	if ext := strings.ToLower(filepath.Ext(inputPath)); ext != ".pdf" {
		return fmt.Errorf("expected .pdf file, got %q", ext)
	}

	Log.WithField("file", inputPath).Info("Processing statement")

	records, err := converter.ConvertFile(inputPath)
	if err != nil {
		return err
	}

	Log.WithField("count", len(records)).Info("Recovered transactions")
	if len(records) == 0 {
		Log.Warn("No transactions found; the PDF may be image-based or use an unsupported layout")
	}

	// With multiple inputs the --output flag cannot name them all, so
	// fall back to per-file naming.
	outPath := outputFlag
	if outPath == "" || multipleInputs {
		base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
		outPath = base + "." + format
	}

	if err := writeRecords(outPath, format, records); err != nil {
		return err
	}

	Log.WithField("output", outPath).Info("Done")
	return nil
}

func writeRecords(path, format string, records []models.TransactionRecord) error {
	switch format {
	case "xlsx":
		return writer.WriteXLSXFile(path, records)
	case "xml":
		return writer.WriteXMLFile(path, records)
	default:
		return writer.WriteCSVFile(path, records)
	}
}
