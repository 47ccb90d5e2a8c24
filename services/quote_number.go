package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase"
)

// formatQuoteNumber constructs the quote number string from components.
func formatQuoteNumber(year int, sequence int) string {
	return fmt.Sprintf("QT-%d-%03d", year, sequence)
}

// GenerateQuoteNumber creates the next quote number for the calendar year.
// Format: QT-{year}-{sequence}, sequence 3-digit zero-padded per year.
func GenerateQuoteNumber(app *pocketbase.PocketBase, now time.Time) string {
	year := now.Year()
	prefix := fmt.Sprintf("QT-%d-", year)

	existing, err := app.FindRecordsByFilter(
		"quotes",
		"quote_number ~ {:prefix}",
		"",
		0,
		0,
		map[string]any{"prefix": prefix + "%"},
	)
	if err != nil {
		existing = nil
	}

	return formatQuoteNumber(year, len(existing)+1)
}

// GeneratePONumber creates a purchase order number from the generation
// timestamp: PO-{YYYYMMDD}-{HHMMSS}.
func GeneratePONumber(now time.Time) string {
	return fmt.Sprintf("PO-%s-%s", now.Format("20060102"), now.Format("150405"))
}
