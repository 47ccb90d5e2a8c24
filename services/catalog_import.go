package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/xuri/excelize/v2"
)

// TemplateField describes one column of the catalog template.
type TemplateField struct {
	Key      string
	Label    string
	Required bool
}

// CatalogTemplateFields returns the column set of the catalog spreadsheet.
// Price columns cover both tier schemas; a given source sheet fills one or
// the other.
func CatalogTemplateFields() []TemplateField {
	fields := []TemplateField{
		{Key: "partner", Label: "Partner", Required: true},
		{Key: "name", Label: "Product/Service", Required: true},
		{Key: "product_ref", Label: "Purchase Description"},
		{Key: "country_of_origin", Label: "Country of Origin"},
		{Key: "description", Label: "Marketing Description"},
		{Key: "customization_info", Label: "Customization Info"},
		{Key: "has_tiers", Label: "Pricing Tiers (Y/N)"},
		{Key: "tier_info", Label: "Pricing Tiers Info"},
		{Key: "flat_price", Label: "Cost (No Tiers)"},
		{Key: "customization_setup_fee", Label: "Customization Setup Fee"},
		{Key: "customization_unit_fee", Label: "Customization Cost per Unit"},
		{Key: "customization_minimum", Label: "Minimum Customization Qty"},
		{Key: "tariff_rate", Label: "Tariff Rate"},
	}
	for i := 1; i <= MaxParsedTiers; i++ {
		fields = append(fields, TemplateField{
			Key:   tierPriceField(i),
			Label: fmt.Sprintf("Cost: Tier %d", i),
		})
	}
	for i, r := range ladderRanges {
		fields = append(fields, TemplateField{
			Key:   ladderPriceField(i + 1),
			Label: fmt.Sprintf("Cost w/o Shipping (%s)", r.Label()),
		})
	}
	return fields
}

// CatalogValidationError is a single field-level error on one row.
type CatalogValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// CatalogValidationResult is returned after parsing and validating a catalog
// file.
type CatalogValidationResult struct {
	TotalRows    int                      `json:"total_rows"`
	ValidRows    int                      `json:"valid_rows"`
	ErrorRows    int                      `json:"error_rows"`
	Errors       []CatalogValidationError `json:"errors"`
	Unrecognized []string                 `json:"unrecognized_columns,omitempty"`

	ParsedRows []map[string]string `json:"-"`
}

// parseCatalogCSV reads a CSV catalog export and returns headers + data rows.
func parseCatalogCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return splitHeaderAndData(allRows)
}

// parseCatalogExcel reads the first sheet of an xlsx catalog and returns
// headers + data rows.
func parseCatalogExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	return splitHeaderAndData(rows)
}

// splitHeaderAndData locates the header row and trims leading empty columns.
// Catalog sheets carry preamble rows above the real header, and the first
// column is often blank, so the header is the first row containing the
// Partner column.
func splitHeaderAndData(rows [][]string) ([]string, [][]string, error) {
	headerIdx := -1
	firstCol := 0

	for i, row := range rows {
		for j, cell := range row {
			if strings.EqualFold(strings.TrimSpace(cell), "Partner") {
				headerIdx = i
				firstCol = j
				break
			}
		}
		if headerIdx >= 0 {
			break
		}
	}

	if headerIdx == -1 {
		return nil, nil, fmt.Errorf("no header row found (missing Partner column)")
	}
	if headerIdx+1 >= len(rows) {
		return nil, nil, fmt.Errorf("file must contain at least one data row below the header")
	}

	headers := make([]string, 0, len(rows[headerIdx])-firstCol)
	for _, h := range rows[headerIdx][firstCol:] {
		headers = append(headers, strings.TrimSpace(h))
	}

	var data [][]string
	for _, row := range rows[headerIdx+1:] {
		if firstCol < len(row) {
			data = append(data, row[firstCol:])
		} else {
			data = append(data, nil)
		}
	}

	return headers, data, nil
}

// mapCatalogHeaders maps uploaded column headers to template field keys.
// Returns one key per column ("" for unrecognized) plus the unrecognized
// header labels.
func mapCatalogHeaders(headers []string, fields []TemplateField) ([]string, []string) {
	labelToKey := make(map[string]string, len(fields))
	for _, f := range fields {
		labelToKey[strings.ToLower(strings.TrimSpace(f.Label))] = f.Key
	}

	mapped := make([]string, len(headers))
	var unrecognized []string

	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		if key, ok := labelToKey[norm]; ok {
			mapped[i] = key
		} else if norm != "" {
			unrecognized = append(unrecognized, h)
		}
	}
	return mapped, unrecognized
}

// ValidateCatalogFile parses and validates an uploaded catalog file.
// fileName decides the format: .csv is parsed as CSV, anything else as xlsx.
// A bad price cell is reported but does not invalidate the row — pricing
// treats it as "no price" at resolution time. Missing partner or product
// name does invalidate the row.
func ValidateCatalogFile(file io.Reader, fileName string) (*CatalogValidationResult, error) {
	var headers []string
	var dataRows [][]string
	var err error

	if strings.HasSuffix(strings.ToLower(fileName), ".csv") {
		headers, dataRows, err = parseCatalogCSV(file)
	} else {
		headers, dataRows, err = parseCatalogExcel(file)
	}
	if err != nil {
		return nil, err
	}

	fields := CatalogTemplateFields()
	mapped, unrecognized := mapCatalogHeaders(headers, fields)

	result := &CatalogValidationResult{Unrecognized: unrecognized}

	for rowIdx, row := range dataRows {
		parsed := make(map[string]string)
		for colIdx, key := range mapped {
			if key == "" || colIdx >= len(row) {
				continue
			}
			parsed[key] = strings.TrimSpace(row[colIdx])
		}

		// Skip fully empty rows (spacers in the source sheet).
		if parsed["partner"] == "" && parsed["name"] == "" {
			continue
		}
		result.TotalRows++

		rowValid := true
		rowNum := rowIdx + 1
		if parsed["partner"] == "" {
			result.Errors = append(result.Errors, CatalogValidationError{
				Row: rowNum, Field: "partner", Message: "Partner is required",
			})
			rowValid = false
		}
		if parsed["name"] == "" {
			result.Errors = append(result.Errors, CatalogValidationError{
				Row: rowNum, Field: "name", Message: "Product/Service is required",
			})
			rowValid = false
		}

		for _, f := range fields {
			if !isPriceKey(f.Key) {
				continue
			}
			if raw := parsed[f.Key]; raw != "" {
				if _, ok := CleanPrice(raw); !ok {
					result.Errors = append(result.Errors, CatalogValidationError{
						Row: rowNum, Field: f.Key,
						Message: fmt.Sprintf("unparseable price %q, will be treated as no price", raw),
					})
				}
			}
		}

		if rowValid {
			result.ValidRows++
			result.ParsedRows = append(result.ParsedRows, parsed)
		} else {
			result.ErrorRows++
		}
	}

	if result.TotalRows == 0 {
		return nil, fmt.Errorf("file contains no catalog rows")
	}

	return result, nil
}

func isPriceKey(key string) bool {
	return key == "flat_price" ||
		key == "customization_setup_fee" ||
		key == "customization_unit_fee" ||
		strings.HasPrefix(key, "tier_price_") ||
		strings.HasPrefix(key, "ladder_price_")
}

// ImportCatalog replaces the stored catalog wholesale with the validated
// rows. The previous catalog stays intact if validation produced no usable
// rows.
func ImportCatalog(app *pocketbase.PocketBase, result *CatalogValidationResult) (int, error) {
	if result == nil || len(result.ParsedRows) == 0 {
		return 0, fmt.Errorf("no valid catalog rows to import")
	}

	col, err := app.FindCollectionByNameOrId("catalog_products")
	if err != nil {
		return 0, fmt.Errorf("catalog_products collection not found: %w", err)
	}

	existing, err := app.FindAllRecords("catalog_products")
	if err != nil {
		return 0, fmt.Errorf("could not list existing catalog: %w", err)
	}
	for _, r := range existing {
		if err := app.Delete(r); err != nil {
			return 0, fmt.Errorf("could not clear existing catalog: %w", err)
		}
	}

	imported := 0
	for _, row := range result.ParsedRows {
		record := core.NewRecord(col)
		for key, value := range row {
			if key == "has_tiers" {
				record.Set(key, strings.EqualFold(value, "Y") || strings.EqualFold(value, "Yes"))
				continue
			}
			record.Set(key, value)
		}
		if err := app.Save(record); err != nil {
			return imported, fmt.Errorf("could not save catalog row %q: %w", row["name"], err)
		}
		imported++
	}

	return imported, nil
}
