package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"

	"github.com/fintab/statement-recovery/internal/models"
)

var log = logrus.New()

// SetLogger replaces the package logger with a configured instance.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// SetDelimiter configures the CSV field delimiter for all CSV output.
func SetDelimiter(delim rune) {
	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		w := csv.NewWriter(out)
		w.Comma = delim
		return gocsv.NewSafeCSVWriter(w)
	})
}

// WriteCSV writes the records as CSV with the statement's visual column
// order: Date, Payment Type, Details 1, Details 2, Paid Out, Paid In,
// Balance. All seven fields are emitted as opaque display strings.
func WriteCSV(out io.Writer, records []models.TransactionRecord) error {
	if err := gocsv.Marshal(&records, out); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// WriteCSVFile writes the records to a CSV file at the given path.
func WriteCSVFile(path string, records []models.TransactionRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	log.WithFields(logrus.Fields{
		"file":  path,
		"count": len(records),
	}).Info("Writing transactions to CSV file")

	return WriteCSV(f, records)
}
