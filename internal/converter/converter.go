// Package converter orchestrates extraction and parsing for a whole
// document: the layout-aware path first, then the line-based fallback when
// the layout yields nothing.
package converter

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/fintab/statement-recovery/internal/extractor"
	"github.com/fintab/statement-recovery/internal/models"
	"github.com/fintab/statement-recovery/internal/parser"
)

var log = logrus.New()

// SetLogger replaces the package logger with a configured instance.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// ConvertFile extracts a PDF and recovers its transaction records.
func ConvertFile(filePath string) ([]models.TransactionRecord, error) {
	pages, err := extractor.ExtractFragments(filePath)
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}
	return ConvertFragments(pages), nil
}

// ConvertFragments runs the layout-aware parser over the document's pages.
// When no records come back — the page layout was unrecognizable — the
// whole document is retried through the line-based parser.
func ConvertFragments(pages [][]models.TextFragment) []models.TransactionRecord {
	records := parser.ParseDocument(pages)
	if len(records) > 0 {
		log.WithField("count", len(records)).Debug("Layout-aware parse succeeded")
		return records
	}

	log.Debug("Layout-aware parse found nothing, falling back to line-based parsing")
	return parser.ParseLines(extractor.BuildLines(pages))
}
