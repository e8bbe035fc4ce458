package services

// EstimateExportRow is one line-item row in the estimate workbook.
type EstimateExportRow struct {
	Item              string
	Quantity          float64
	MaterialPrice     float64
	ExpensePrice      float64
	LaborMen          float64
	LaborHours        float64
	MaterialExtension float64
	ExpenseExtension  float64
	LaborTotal        float64
	Price             float64 // SOV allocation of the final price; 0 for overhead rows
	Notes             string
}

// TravelExportRow is one ledger line on the travel sheet.
type TravelExportRow struct {
	Ledger string
	Detail string
	Hours  float64
	Cost   float64
}

// EstimateExportData holds everything the workbook needs, already computed.
type EstimateExportData struct {
	DisplayNumber  string
	ClientName     string
	JobDescription string
	CreatedDate    string

	SovRows    []EstimateExportRow
	NonSovRows []EstimateExportRow
	TravelRows []TravelExportRow

	Calculated   CalculatedValues
	HoursSummary HoursSummary
	HasTravel    bool
}

// BuildEstimateExportData flattens a recalculated document into export rows.
func BuildEstimateExportData(doc EstimateDocument, displayNumber, createdDate string) EstimateExportData {
	data := EstimateExportData{
		DisplayNumber:  displayNumber,
		ClientName:     doc.GeneralInfo.ClientName,
		JobDescription: doc.GeneralInfo.JobDescription,
		CreatedDate:    createdDate,
		Calculated:     doc.CalculatedValues,
		HoursSummary:   doc.HoursSummary,
		HasTravel:      doc.TravelData != nil,
	}

	for i, item := range doc.SovItems {
		ext := CalcLineItemExtensions(item)
		var price float64
		if i < len(doc.CalculatedValues.SovItemPrices) {
			price = doc.CalculatedValues.SovItemPrices[i]
		}
		data.SovRows = append(data.SovRows, EstimateExportRow{
			Item:              item.Item,
			Quantity:          item.Quantity,
			MaterialPrice:     item.MaterialPrice,
			ExpensePrice:      item.ExpensePrice,
			LaborMen:          item.LaborMen,
			LaborHours:        item.LaborHours,
			MaterialExtension: ext.MaterialExtension,
			ExpenseExtension:  ext.ExpenseExtension,
			LaborTotal:        ext.LaborTotal,
			Price:             price,
			Notes:             item.Notes,
		})
	}

	for _, item := range doc.NonSovItems {
		ext := CalcLineItemExtensions(item)
		data.NonSovRows = append(data.NonSovRows, EstimateExportRow{
			Item:              item.Item,
			Quantity:          item.Quantity,
			MaterialPrice:     item.MaterialPrice,
			ExpensePrice:      item.ExpensePrice,
			LaborMen:          item.LaborMen,
			LaborHours:        item.LaborHours,
			MaterialExtension: ext.MaterialExtension,
			ExpenseExtension:  ext.ExpenseExtension,
			LaborTotal:        ext.LaborTotal,
			Notes:             item.Notes,
		})
	}

	if td := doc.TravelData; td != nil {
		for _, e := range td.TravelExpense {
			data.TravelRows = append(data.TravelRows, TravelExportRow{
				Ledger: "Vehicle Mileage",
				Detail: FormatHours(e.TotalMiles) + " mi",
				Cost:   e.VehicleTravelCost,
			})
		}
		for _, t := range td.TravelTime {
			data.TravelRows = append(data.TravelRows, TravelExportRow{
				Ledger: "Travel Time",
				Detail: FormatHours(t.GrandTotalTravelHours) + " hrs",
				Hours:  t.GrandTotalTravelHours,
				Cost:   t.TotalTravelLabor,
			})
		}
		for _, p := range td.PerDiem {
			data.TravelRows = append(data.TravelRows, TravelExportRow{
				Ledger: "Per Diem",
				Detail: FormatHours(p.NumDays) + " days x " + FormatHours(p.NumMen) + " men",
				Cost:   p.TotalPerDiem,
			})
		}
		for _, l := range td.Lodging {
			data.TravelRows = append(data.TravelRows, TravelExportRow{
				Ledger: "Lodging",
				Detail: FormatHours(l.ManNights) + " man-nights",
				Cost:   l.TotalAmount,
			})
		}
		for _, m := range td.LocalMiles {
			data.TravelRows = append(data.TravelRows, TravelExportRow{
				Ledger: "Local Miles",
				Detail: FormatHours(m.TotalMiles) + " mi",
				Cost:   m.TotalLocalMilesCost,
			})
		}
		for _, f := range td.Flights {
			data.TravelRows = append(data.TravelRows, TravelExportRow{
				Ledger: "Flights",
				Detail: FormatHours(f.NumFlights) + " flights x " + FormatHours(f.NumMen) + " men",
				Cost:   f.TotalFlightAmount,
			})
		}
		for _, a := range td.AirTravelTime {
			data.TravelRows = append(data.TravelRows, TravelExportRow{
				Ledger: "Air Travel Time",
				Detail: FormatHours(a.GrandTotalTravelHours) + " hrs",
				Hours:  a.GrandTotalTravelHours,
				Cost:   a.TotalTravelLabor,
			})
		}
		for _, r := range td.RentalCar {
			data.TravelRows = append(data.TravelRows, TravelExportRow{
				Ledger: "Rental Car",
				Detail: FormatHours(r.NumCars) + " cars",
				Cost:   r.TotalAmount,
			})
		}
	}

	return data
}
