package extractor

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
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

// ExtractFragments reads a PDF file and returns the positioned text
// fragments of each page in document-native order. The library panics on
// some malformed files, so extraction recovers and reports an error
// instead.
func ExtractFragments(filePath string) (pages [][]models.TextFragment, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF %q: %w", filePath, err)
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()

		frags := make([]models.TextFragment, 0, len(content.Text))
		for _, t := range content.Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			frags = append(frags, models.TextFragment{X: t.X, Y: t.Y, Text: t.S})
		}
		pages = append(pages, frags)
	}

	log.WithFields(logrus.Fields{
		"file":  filePath,
		"pages": len(pages),
	}).Debug("Extracted positioned text fragments")

	return pages, nil
}

// BuildLines reconstructs plain text lines from positioned fragments:
// fragments are grouped by rounded y-coordinate, rows ordered top to
// bottom, fragments within a row left to right and space-joined. Used by
// the line-based fallback parser.
func BuildLines(pages [][]models.TextFragment) []string {
	var lines []string
	for _, frags := range pages {
		byY := make(map[int][]models.TextFragment)
		for _, frag := range frags {
			y := int(math.Round(frag.Y))
			byY[y] = append(byY[y], frag)
		}

		ys := make([]int, 0, len(byY))
		for y := range byY {
			ys = append(ys, y)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(ys)))

		for _, y := range ys {
			items := byY[y]
			sort.Slice(items, func(a, b int) bool { return items[a].X < items[b].X })
			parts := make([]string, 0, len(items))
			for _, item := range items {
				parts = append(parts, item.Text)
			}
			line := strings.TrimSpace(strings.Join(parts, " "))
			if line != "" {
				lines = append(lines, line)
			}
		}
	}
	return lines
}

// ExtractLines reads a PDF and returns reconstructed text lines for the
// whole document, one logical line per entry.
func ExtractLines(filePath string) ([]string, error) {
	pages, err := ExtractFragments(filePath)
	if err != nil {
		return nil, err
	}
	return BuildLines(pages), nil
}
