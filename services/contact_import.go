package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"mime/multipart"
	"regexp"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/xuri/excelize/v2"
)

// ContactField describes one column of the contact import template.
type ContactField struct {
	Key      string
	Label    string
	Required bool
}

// ContactTemplateFields returns the import columns in template order.
func ContactTemplateFields() []ContactField {
	return []ContactField{
		{Key: "first_name", Label: "First Name", Required: true},
		{Key: "last_name", Label: "Last Name", Required: true},
		{Key: "title", Label: "Title"},
		{Key: "email", Label: "Email"},
		{Key: "phone", Label: "Phone"},
		{Key: "notes", Label: "Notes"},
	}
}

// ValidationError represents a single field-level error on one row.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult is returned after parsing and validating an uploaded file.
type ValidationResult struct {
	TotalRows  int                 `json:"total_rows"`
	ValidRows  int                 `json:"valid_rows"`
	ErrorRows  int                 `json:"error_rows"`
	Errors     []ValidationError   `json:"errors"`
	ParsedRows []map[string]string `json:"-"`
	FileName   string              `json:"-"`
}

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^[0-9()+.\- ]{7,20}$`)
)

// ValidateContactEmail checks email format; empty is acceptable.
func ValidateContactEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return true
	}
	return emailPattern.MatchString(email)
}

// ValidateContactPhone checks phone format loosely; empty is acceptable.
func ValidateContactPhone(phone string) bool {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return true
	}
	return phonePattern.MatchString(phone)
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}
	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the
// first sheet.
func parseExcel(file multipart.File) ([]string, [][]string, error) {
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
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}
	return rows[0], rows[1:], nil
}

// mapHeadersToFields maps uploaded column headers to field keys. Returns an
// ordered list of keys (empty string for unrecognized columns).
func mapHeadersToFields(headers []string, fields []ContactField) []string {
	labelToKey := make(map[string]string, len(fields))
	for _, f := range fields {
		labelToKey[strings.ToLower(strings.TrimSpace(f.Label))] = f.Key
	}

	mapped := make([]string, len(headers))
	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		// Strip the trailing " *" the template adds for required fields.
		norm = strings.TrimSpace(strings.TrimSuffix(norm, " *"))
		mapped[i] = labelToKey[norm]
	}
	return mapped
}

// ValidateContactFile parses and validates an uploaded contact file
// (.csv or .xlsx).
func ValidateContactFile(file multipart.File, fileName string) (*ValidationResult, error) {
	fields := ContactTemplateFields()

	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		headers, dataRows, err = parseCSV(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		headers, dataRows, err = parseExcel(file)
	default:
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	columnKeys := mapHeadersToFields(headers, fields)

	result := &ValidationResult{
		TotalRows:  len(dataRows),
		FileName:   fileName,
		ParsedRows: make([]map[string]string, 0, len(dataRows)),
	}

	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for header row
		rowData := make(map[string]string)
		var rowErrors []ValidationError

		for colIdx, key := range columnKeys {
			if key == "" {
				continue
			}
			value := ""
			if colIdx < len(row) {
				value = strings.TrimSpace(row[colIdx])
			}
			rowData[key] = value
		}

		for _, f := range fields {
			if f.Required && rowData[f.Key] == "" {
				rowErrors = append(rowErrors, ValidationError{
					Row:     rowNum,
					Field:   f.Label,
					Message: fmt.Sprintf("%s is required", f.Label),
				})
			}
		}

		if !ValidateContactEmail(rowData["email"]) {
			rowErrors = append(rowErrors, ValidationError{
				Row:     rowNum,
				Field:   "Email",
				Message: "invalid email address",
			})
		}
		if !ValidateContactPhone(rowData["phone"]) {
			rowErrors = append(rowErrors, ValidationError{
				Row:     rowNum,
				Field:   "Phone",
				Message: "invalid phone number",
			})
		}

		if len(rowErrors) == 0 {
			result.ValidRows++
			result.ParsedRows = append(result.ParsedRows, rowData)
		} else {
			result.ErrorRows++
			result.Errors = append(result.Errors, rowErrors...)
		}
	}

	return result, nil
}

// CommitContactImport creates contact records for every valid parsed row.
// Returns the number of contacts created.
func CommitContactImport(app *pocketbase.PocketBase, customerID string, rows []map[string]string) (int, error) {
	col, err := app.FindCollectionByNameOrId("contacts")
	if err != nil {
		return 0, fmt.Errorf("find contacts collection: %w", err)
	}

	created := 0
	for _, rowData := range rows {
		record := core.NewRecord(col)
		record.Set("customer", customerID)
		for key, value := range rowData {
			record.Set(key, value)
		}
		if err := app.Save(record); err != nil {
			return created, fmt.Errorf("save contact row %d: %w", created+1, err)
		}
		created++
	}
	return created, nil
}

// GenerateContactTemplate builds the downloadable xlsx import template with
// one header row and required-field markers.
func GenerateContactTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for i, field := range ContactTemplateFields() {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("cell name: %w", err)
		}
		label := field.Label
		if field.Required {
			label += " *"
		}
		f.SetCellValue(sheet, cell, label)
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, 20)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(ContactTemplateFields()))
	f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write template: %w", err)
	}
	return buf.Bytes(), nil
}
