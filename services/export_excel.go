package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateEstimateExcel creates a multi-sheet workbook from the given export
// data: an Estimate sheet with the SOV and overhead sections plus the
// pricing summary, and a Travel sheet when travel is enabled. Returns the
// file contents as a byte slice.
func GenerateEstimateExcel(data EstimateExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const estimateSheet = "Estimate"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, estimateSheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	styles, err := newWorkbookStyles(f)
	if err != nil {
		return nil, err
	}

	if err := writeEstimateSheet(f, estimateSheet, data, styles); err != nil {
		return nil, err
	}

	if data.HasTravel {
		const travelSheet = "Travel"
		if _, err := f.NewSheet(travelSheet); err != nil {
			return nil, fmt.Errorf("create travel sheet: %w", err)
		}
		if err := writeTravelSheet(f, travelSheet, data, styles); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// workbookStyles holds the style IDs shared between sheets.
type workbookStyles struct {
	title        int
	subtitle     int
	header       int
	item         int
	sectionLabel int
	summaryLabel int
	summaryValue int
}

func newWorkbookStyles(f *excelize.File) (workbookStyles, error) {
	var s workbookStyles
	var err error

	s.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return s, fmt.Errorf("create title style: %w", err)
	}

	s.subtitle, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return s, fmt.Errorf("create subtitle style: %w", err)
	}

	s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return s, fmt.Errorf("create header style: %w", err)
	}

	s.item, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return s, fmt.Errorf("create item style: %w", err)
	}

	s.sectionLabel, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
	})
	if err != nil {
		return s, fmt.Errorf("create section style: %w", err)
	}

	s.summaryLabel, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return s, fmt.Errorf("create summary label style: %w", err)
	}

	s.summaryValue, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return s, fmt.Errorf("create summary value style: %w", err)
	}

	return s, nil
}

func writeEstimateSheet(f *excelize.File, sheet string, data EstimateExportData, styles workbookStyles) error {
	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}
	lastCol := columns[len(columns)-1]

	widths := []float64{36, 8, 12, 12, 8, 10, 14, 14, 14, 14}
	for i, col := range columns {
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// Header block.
	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheet, "A1", "Estimate "+sanitizeExcelCell(data.DisplayNumber))
	f.SetCellStyle(sheet, "A1", lastCol+"1", styles.title)

	f.SetCellValue(sheet, "A2", "Client: "+sanitizeExcelCell(data.ClientName))
	f.SetCellStyle(sheet, "A2", "A2", styles.subtitle)
	f.SetCellValue(sheet, "A3", "Job: "+sanitizeExcelCell(data.JobDescription))
	f.SetCellStyle(sheet, "A3", "A3", styles.subtitle)
	f.SetCellValue(sheet, "A4", "Date: "+data.CreatedDate)
	f.SetCellStyle(sheet, "A4", "A4", styles.subtitle)

	headers := []string{
		"Item", "Qty", "Material", "Expense", "Men", "Hours",
		"Material Ext", "Expense Ext", "Labor Hours", "Price",
	}

	writeSection := func(row int, label string, rows []EstimateExportRow, withPrice bool) int {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), label)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), styles.sectionLabel)
		row++

		for i, h := range headers {
			f.SetCellValue(sheet, fmt.Sprintf("%s%d", columns[i], row), h)
		}
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), styles.header)
		row++

		for _, r := range rows {
			rowStr := fmt.Sprintf("%d", row)
			f.SetCellValue(sheet, "A"+rowStr, sanitizeExcelCell(r.Item))
			f.SetCellValue(sheet, "B"+rowStr, r.Quantity)
			f.SetCellValue(sheet, "C"+rowStr, FormatUSD(r.MaterialPrice))
			f.SetCellValue(sheet, "D"+rowStr, FormatUSD(r.ExpensePrice))
			f.SetCellValue(sheet, "E"+rowStr, r.LaborMen)
			f.SetCellValue(sheet, "F"+rowStr, r.LaborHours)
			f.SetCellValue(sheet, "G"+rowStr, FormatUSD(r.MaterialExtension))
			f.SetCellValue(sheet, "H"+rowStr, FormatUSD(r.ExpenseExtension))
			f.SetCellValue(sheet, "I"+rowStr, r.LaborTotal)
			if withPrice {
				f.SetCellValue(sheet, "J"+rowStr, FormatUSD(r.Price))
			}
			f.SetCellStyle(sheet, "A"+rowStr, lastCol+rowStr, styles.item)
			row++
		}
		return row + 1
	}

	row := 6
	row = writeSection(row, "Schedule of Values", data.SovRows, true)
	row = writeSection(row, "Overhead", data.NonSovRows, false)

	// Pricing summary block.
	summary := []struct {
		label string
		value string
	}{
		{"Straight Time Hours:", FormatHours(data.Calculated.StraightTimeHours)},
		{"Overtime Hours:", FormatHours(data.Calculated.OvertimeHours)},
		{"Double Time Hours:", FormatHours(data.Calculated.DoubleTimeHours)},
		{"Total Travel Cost:", FormatUSD(data.Calculated.TotalTravelCost)},
		{"Subtotal:", FormatUSD(data.Calculated.Subtotal)},
		{"Final Price:", FormatWholeUSD(data.Calculated.Final)},
		{"Mobilization Fee:", FormatWholeUSD(data.Calculated.MobilizationFee)},
		{"NET 30:", FormatWholeUSD(data.Calculated.Net30)},
		{"NET 60:", FormatWholeUSD(data.Calculated.Net60)},
		{"NET 90:", FormatWholeUSD(data.Calculated.Net90)},
	}
	for _, line := range summary {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheet, "H"+rowStr, line.label)
		f.SetCellStyle(sheet, "H"+rowStr, "H"+rowStr, styles.summaryLabel)
		f.SetCellValue(sheet, "I"+rowStr, line.value)
		f.SetCellStyle(sheet, "I"+rowStr, "I"+rowStr, styles.summaryValue)
		row++
	}

	return nil
}

func writeTravelSheet(f *excelize.File, sheet string, data EstimateExportData, styles workbookStyles) error {
	columns := []string{"A", "B", "C", "D"}
	lastCol := columns[len(columns)-1]

	widths := []float64{24, 30, 12, 16}
	for i, col := range columns {
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return fmt.Errorf("merge travel title: %w", err)
	}
	f.SetCellValue(sheet, "A1", "Travel Costs")
	f.SetCellStyle(sheet, "A1", lastCol+"1", styles.title)

	headers := []string{"Ledger", "Detail", "Hours", "Cost"}
	for i, h := range headers {
		f.SetCellValue(sheet, fmt.Sprintf("%s3", columns[i]), h)
	}
	f.SetCellStyle(sheet, "A3", lastCol+"3", styles.header)

	row := 4
	for _, r := range data.TravelRows {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheet, "A"+rowStr, r.Ledger)
		f.SetCellValue(sheet, "B"+rowStr, sanitizeExcelCell(r.Detail))
		if r.Hours != 0 {
			f.SetCellValue(sheet, "C"+rowStr, r.Hours)
		}
		f.SetCellValue(sheet, "D"+rowStr, FormatUSD(r.Cost))
		f.SetCellStyle(sheet, "A"+rowStr, lastCol+rowStr, styles.item)
		row++
	}

	row++
	rowStr := fmt.Sprintf("%d", row)
	f.SetCellValue(sheet, "C"+rowStr, "Total Travel:")
	f.SetCellStyle(sheet, "C"+rowStr, "C"+rowStr, styles.summaryLabel)
	f.SetCellValue(sheet, "D"+rowStr, FormatUSD(data.Calculated.TotalTravelCost))
	f.SetCellStyle(sheet, "D"+rowStr, "D"+rowStr, styles.summaryValue)

	return nil
}

// thinBorders returns a uniform thin border set for table cells.
func thinBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Style: 1, Color: "#999999"},
		{Type: "right", Style: 1, Color: "#999999"},
		{Type: "top", Style: 1, Color: "#999999"},
		{Type: "bottom", Style: 1, Color: "#999999"},
	}
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous
// leading characters with a single quote. Excel interprets cells starting
// with =, +, -, @, \t or \r as formulas.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
