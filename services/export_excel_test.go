package services

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildExportFixture(t *testing.T, withTravel bool) EstimateExportData {
	t.Helper()

	doc := DefaultEstimateDocument()
	doc.GeneralInfo.ClientName = "Harborview Manufacturing"
	doc.GeneralInfo.JobDescription = "Annual substation maintenance"
	doc.SovItems = []LineItem{
		{Item: "Transformer testing", Quantity: 2, MaterialPrice: 500, ExpensePrice: 100, LaborMen: 2, LaborHours: 4},
	}
	if withTravel {
		doc.TravelData = DefaultTravelData()
		doc.TravelData.TravelExpense[0] = TravelExpenseEntry{OneWayMiles: 100, Trips: 1, NumVehicles: 1, Rate: 1}
	}
	Recalculate(&doc)

	return BuildEstimateExportData(doc, "EST-2026-0001-a1b2", "2026-09-01")
}

func TestGenerateEstimateExcel(t *testing.T) {
	excelData, err := GenerateEstimateExcel(buildExportFixture(t, false))
	if err != nil {
		t.Fatalf("GenerateEstimateExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(excelData))
	if err != nil {
		t.Fatalf("output is not a readable workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Estimate" {
		t.Errorf("sheets = %v, want [Estimate]", sheets)
	}

	title, err := f.GetCellValue("Estimate", "A1")
	if err != nil {
		t.Fatalf("reading title failed: %v", err)
	}
	if title != "Estimate EST-2026-0001-a1b2" {
		t.Errorf("title = %q", title)
	}

	client, _ := f.GetCellValue("Estimate", "A2")
	if client != "Client: Harborview Manufacturing" {
		t.Errorf("client line = %q", client)
	}

	// Section label, header row, then the first SOV row.
	label, _ := f.GetCellValue("Estimate", "A6")
	if label != "Schedule of Values" {
		t.Errorf("section label = %q", label)
	}
	item, _ := f.GetCellValue("Estimate", "A8")
	if item != "Transformer testing" {
		t.Errorf("first SOV item = %q", item)
	}
	materialExt, _ := f.GetCellValue("Estimate", "G8")
	if materialExt != "$1,000.00" {
		t.Errorf("material extension = %q", materialExt)
	}
}

func TestGenerateEstimateExcelTravelSheet(t *testing.T) {
	excelData, err := GenerateEstimateExcel(buildExportFixture(t, true))
	if err != nil {
		t.Fatalf("GenerateEstimateExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(excelData))
	if err != nil {
		t.Fatalf("output is not a readable workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 {
		t.Fatalf("sheets = %v, want Estimate and Travel", sheets)
	}

	title, _ := f.GetCellValue("Travel", "A1")
	if title != "Travel Costs" {
		t.Errorf("travel title = %q", title)
	}
	ledger, _ := f.GetCellValue("Travel", "A4")
	if ledger != "Vehicle Mileage" {
		t.Errorf("first ledger = %q", ledger)
	}
	cost, _ := f.GetCellValue("Travel", "D4")
	if cost != "$200.00" {
		t.Errorf("mileage cost = %q", cost)
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		in     string
		expect string
	}{
		{"Transformer testing", "Transformer testing"},
		{"=HYPERLINK(\"http://evil\")", "'=HYPERLINK(\"http://evil\")"},
		{"+SUM(A1)", "'+SUM(A1)"},
		{"-2+3", "'-2+3"},
		{"@cmd", "'@cmd"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := sanitizeExcelCell(tt.in); got != tt.expect {
			t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.in, got, tt.expect)
		}
	}
}
