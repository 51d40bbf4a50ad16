package api

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/fintab/statement-recovery/internal/converter"
	"github.com/fintab/statement-recovery/internal/models"
	"github.com/fintab/statement-recovery/internal/parser"
	"github.com/fintab/statement-recovery/internal/writer"
)

const version = "1.0.0"

// pageBreakMarker separates pages in pre-extracted text uploads.
const pageBreakMarker = "\n---PAGE_BREAK---\n"

var log = logrus.New()

// SetLogger replaces the package logger with a configured instance.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// ConvertResponse is the JSON response from the /api/convert endpoint.
type ConvertResponse struct {
	Success      bool                       `json:"success"`
	Error        string                     `json:"error,omitempty"`
	Transactions []models.TransactionRecord `json:"transactions"`
	CSV          string                     `json:"csv,omitempty"`
	TotalPaidOut string                     `json:"totalPaidOut"`
	TotalPaidIn  string                     `json:"totalPaidIn"`
	Count        int                        `json:"count"`
	Version      string                     `json:"version,omitempty"`
}

// NewApp builds the fiber application with all routes registered.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: 32 << 20, // statements are small; 32MB is generous
	})
	app.Get("/api/health", HandleHealth)
	app.Post("/api/convert", HandleConvert)
	return app
}

// HandleHealth reports service liveness.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": version,
	})
}

// HandleConvert accepts a statement PDF upload (form field "file") or
// pre-extracted text (form field "extractedText", pages separated by the
// page-break marker) and returns the recovered transaction records along
// with a rendered CSV and paid in/out totals.
func HandleConvert(c *fiber.Ctx) error {
	// Pre-extracted text skips PDF handling entirely and goes straight
	// to the line-based parser.
	if extracted := c.FormValue("extractedText"); extracted != "" {
		var lines []string
		for _, page := range strings.Split(extracted, pageBreakMarker) {
			for _, line := range strings.Split(page, "\n") {
				if line = strings.TrimSpace(line); line != "" {
					lines = append(lines, line)
				}
			}
		}
		return respond(c, parser.ParseLines(lines))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return writeError(c, fiber.StatusBadRequest, "Only PDF files are supported.")
	}

	tmp, err := os.CreateTemp("", "statement-*.pdf")
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to create temp file.")
	}
	defer os.Remove(tmp.Name())
	tmp.Close()

	if err := c.SaveFile(fileHeader, tmp.Name()); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to save uploaded file.")
	}

	records, err := converter.ConvertFile(tmp.Name())
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("PDF extraction failed: %v", err))
	}

	log.WithFields(logrus.Fields{
		"file":  fileHeader.Filename,
		"count": len(records),
	}).Info("Converted statement upload")

	return respond(c, records)
}

func respond(c *fiber.Ctx, records []models.TransactionRecord) error {
	// nil marshals to JSON null, not []
	if records == nil {
		records = []models.TransactionRecord{}
	}

	var csvBuf bytes.Buffer
	if err := writer.WriteCSV(&csvBuf, records); err != nil {
		return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("CSV generation failed: %v", err))
	}

	totalOut, totalIn := sumTotals(records)

	return c.JSON(ConvertResponse{
		Success:      true,
		Transactions: records,
		CSV:          csvBuf.String(),
		TotalPaidOut: totalOut.StringFixed(2),
		TotalPaidIn:  totalIn.StringFixed(2),
		Count:        len(records),
		Version:      version,
	})
}

// sumTotals adds up the paid-out and paid-in columns with exact decimal
// arithmetic. Unparseable values are skipped; the record fields stay
// untouched display strings.
func sumTotals(records []models.TransactionRecord) (totalOut, totalIn decimal.Decimal) {
	for _, r := range records {
		if r.PaidOut != "" {
			if v, err := decimal.NewFromString(r.PaidOut); err == nil {
				totalOut = totalOut.Add(v)
			}
		}
		if r.PaidIn != "" {
			if v, err := decimal.NewFromString(r.PaidIn); err == nil {
				totalIn = totalIn.Add(v)
			}
		}
	}
	return totalOut, totalIn
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ConvertResponse{
		Success:      false,
		Error:        msg,
		Transactions: []models.TransactionRecord{},
	})
}
