// Package services provides the estimate calculation engine, document
// serialization, export generation and other pure business logic.
package services

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cast"
)

// GeneralInfo holds the freeform header fields of an estimate.
type GeneralInfo struct {
	ClientName          string `json:"clientName"`
	JobDescription      string `json:"jobDescription"`
	DueDate             string `json:"dueDate"`
	Location            string `json:"location"`
	PeriodOfPerformance string `json:"periodOfPerformance"`
	StartDate           string `json:"startDate"`
	PONumber            string `json:"poNumber"`
	Notes               string `json:"notes"`
}

// LineItem is a single row on the estimate sheet, either billable scope
// (SOV) or overhead (non-SOV). All numeric fields default to zero.
type LineItem struct {
	Item          string  `json:"item"`
	Quantity      float64 `json:"quantity"`
	MaterialPrice float64 `json:"materialPrice"`
	ExpensePrice  float64 `json:"expensePrice"`
	LaborMen      float64 `json:"laborMen"`
	LaborHours    float64 `json:"laborHours"`
	Notes         string  `json:"notes"`
}

// HoursSummary aggregates labor and travel hours. Men and HoursPerDay are
// user inputs; the rest is recomputed on every pass.
type HoursSummary struct {
	Men          float64 `json:"men"`
	HoursPerDay  float64 `json:"hoursPerDay"`
	WorkHours    float64 `json:"workHours"`
	WorkSovHours float64 `json:"workSovHours"`
	TravelHours  float64 `json:"travelHours"`
	TotalHours   float64 `json:"totalHours"`
	TotalDays    float64 `json:"totalDays"`
}

// CalculatedValues is the derived pricing aggregate. It is never edited
// directly; Recalculate rebuilds it from scratch on every load and save.
type CalculatedValues struct {
	TotalMaterial     float64   `json:"totalMaterial"`
	TotalExpense      float64   `json:"totalExpense"`
	NonSovExpense     float64   `json:"nonSovExpense"`
	StraightTimeHours float64   `json:"straightTimeHours"`
	OvertimeHours     float64   `json:"overtimeHours"`
	DoubleTimeHours   float64   `json:"doubleTimeHours"`
	TotalTravelCost   float64   `json:"totalTravelCost"`
	Subtotal          float64   `json:"subtotal"`
	Final             float64   `json:"final"`
	MobilizationFee   float64   `json:"mobilizationFee"`
	Net30             float64   `json:"net30"`
	Net60             float64   `json:"net60"`
	Net90             float64   `json:"net90"`
	SovItemPrices     []float64 `json:"sovItemPrices"`
}

// EstimateDocument is the whole persisted estimate state tree. TravelData is
// nil when travel is disabled for the estimate; it is stored in its own
// column, separate from the main data blob.
type EstimateDocument struct {
	GeneralInfo      GeneralInfo      `json:"generalInfo"`
	SovItems         []LineItem       `json:"sovItems"`
	NonSovItems      []LineItem       `json:"nonSovItems"`
	CalculatedValues CalculatedValues `json:"calculatedValues"`
	HoursSummary     HoursSummary     `json:"hoursSummary"`
	TravelData       *TravelData      `json:"-"`
}

const (
	// DefaultHoursPerDay is the working-day size used by the labor-tier
	// split when the user has not configured one.
	DefaultHoursPerDay = 8
	// DefaultCrewSize is the starting number of men on a new estimate.
	DefaultCrewSize = 2

	blankSovRows = 5
)

// defaultNonSovItems are the five overhead lines every new estimate starts
// with.
var defaultNonSovItems = []string{
	"Test Reports",
	"Project Management",
	"Shipping & Handling",
	"Equipment Rental",
	"Consumables",
}

// DefaultLineItem returns an all-zero line item.
func DefaultLineItem() LineItem {
	return LineItem{}
}

// DefaultHoursSummary returns the documented hours-summary defaults.
func DefaultHoursSummary() HoursSummary {
	return HoursSummary{
		Men:         DefaultCrewSize,
		HoursPerDay: DefaultHoursPerDay,
	}
}

// DefaultEstimateDocument builds an empty estimate: five blank SOV rows, the
// five fixed overhead rows, default hours summary, no travel.
func DefaultEstimateDocument() EstimateDocument {
	doc := EstimateDocument{
		SovItems:     make([]LineItem, blankSovRows),
		NonSovItems:  make([]LineItem, 0, len(defaultNonSovItems)),
		HoursSummary: DefaultHoursSummary(),
	}
	for _, name := range defaultNonSovItems {
		doc.NonSovItems = append(doc.NonSovItems, LineItem{Item: name})
	}
	Recalculate(&doc)
	return doc
}

// NormalizeEstimateDocument backfills missing or zeroed structural fields
// with the documented defaults. Zero is treated the same as absent for the
// two hours-summary inputs, matching the falsy coalescing the original data
// was written with.
func NormalizeEstimateDocument(doc *EstimateDocument) {
	if len(doc.SovItems) == 0 {
		doc.SovItems = make([]LineItem, blankSovRows)
	}
	if len(doc.NonSovItems) == 0 {
		for _, name := range defaultNonSovItems {
			doc.NonSovItems = append(doc.NonSovItems, LineItem{Item: name})
		}
	}
	if doc.HoursSummary.Men <= 0 {
		doc.HoursSummary.Men = DefaultCrewSize
	}
	if doc.HoursSummary.HoursPerDay <= 0 {
		doc.HoursSummary.HoursPerDay = DefaultHoursPerDay
	}
	if doc.TravelData != nil {
		normalizeTravelData(doc.TravelData)
	}
}

// MarshalEstimateData serializes the main estimate blob (everything except
// travel data).
func MarshalEstimateData(doc EstimateDocument) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal estimate data: %w", err)
	}
	return data, nil
}

// MarshalTravelData serializes the travel ledgers, or returns nil when
// travel is disabled.
func MarshalTravelData(doc EstimateDocument) ([]byte, error) {
	if doc.TravelData == nil {
		return nil, nil
	}
	data, err := json.Marshal(doc.TravelData)
	if err != nil {
		return nil, fmt.Errorf("marshal travel data: %w", err)
	}
	return data, nil
}

// ParseEstimateDocument deserializes the stored data and travel blobs into a
// fully normalized, recalculated document. Malformed data never propagates:
// a bad main blob degrades to the all-default document, a bad travel blob
// degrades to travel-disabled.
func ParseEstimateDocument(data, travelData []byte) EstimateDocument {
	var doc EstimateDocument
	if len(data) == 0 {
		doc = DefaultEstimateDocument()
	} else if err := json.Unmarshal(data, &doc); err != nil {
		log.Printf("estimate: malformed stored data, falling back to defaults: %v", err)
		doc = DefaultEstimateDocument()
	}

	if len(travelData) > 0 && string(travelData) != "null" {
		var td TravelData
		if err := json.Unmarshal(travelData, &td); err != nil {
			log.Printf("estimate: malformed stored travel data, disabling travel: %v", err)
		} else {
			doc.TravelData = &td
		}
	}

	NormalizeEstimateDocument(&doc)
	Recalculate(&doc)
	return doc
}

// RawColumn coerces a record column value (string, []byte or types.JSONRaw)
// into raw JSON bytes for ParseEstimateDocument.
func RawColumn(value any) []byte {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return v
	default:
		return []byte(cast.ToString(value))
	}
}
