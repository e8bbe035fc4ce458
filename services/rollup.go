package services

import "math"

// Fixed pricing constants. These encode the company's billing policy and
// must not drift: material carries a 9% overhead and a 30% margin, expenses
// carry overhead only, non-SOV expenses pass through at cost, and labor
// bills at the three tier rates.
const (
	materialOverheadFactor = 1.09
	materialMarginFactor   = 1.3
	expenseOverheadFactor  = 1.09
	nonSovExpenseFactor    = 1.00

	straightTimeRate = 240
	overtimeRate     = 360
	doubleTimeRate   = 480

	// The final price marks the subtotal up by dividing through 0.96.
	finalPriceDivisor = 0.96

	net60Factor = 1.06
	net90Factor = 1.09
)

// MobilizationFactor is a step function of the final price. The legacy
// table had a >1,000,000 tier that also returned 0.05; it is kept merged
// with the >500,000 tier as observed rather than "corrected".
func MobilizationFactor(final float64) float64 {
	switch {
	case final > 500000:
		return 0.05
	case final > 100000:
		return 0.10
	default:
		return 0
	}
}

// RollupInput carries the aggregates the pricing rollup combines.
type RollupInput struct {
	TotalMaterial   float64
	TotalExpense    float64 // SOV + non-SOV combined
	NonSovExpense   float64 // non-SOV only, tracked separately
	Labor           LaborSplit
	TotalTravelCost float64
}

// CalcRollup combines the aggregates through the fixed markup factors into
// the subtotal, final price, mobilization fee and net-term prices.
func CalcRollup(in RollupInput) CalculatedValues {
	subtotal := in.TotalMaterial*materialOverheadFactor*materialMarginFactor +
		in.TotalExpense*expenseOverheadFactor +
		in.NonSovExpense*nonSovExpenseFactor +
		in.Labor.StraightTimeHours*straightTimeRate +
		in.Labor.OvertimeHours*overtimeRate +
		in.Labor.DoubleTimeHours*doubleTimeRate +
		in.TotalTravelCost

	final := math.Ceil(subtotal / finalPriceDivisor)

	return CalculatedValues{
		TotalMaterial:     in.TotalMaterial,
		TotalExpense:      in.TotalExpense,
		NonSovExpense:     in.NonSovExpense,
		StraightTimeHours: in.Labor.StraightTimeHours,
		OvertimeHours:     in.Labor.OvertimeHours,
		DoubleTimeHours:   in.Labor.DoubleTimeHours,
		TotalTravelCost:   in.TotalTravelCost,
		Subtotal:          subtotal,
		Final:             final,
		MobilizationFee:   math.Ceil(final * MobilizationFactor(final)),
		Net30:             math.Ceil(final),
		Net60:             math.Ceil(final * net60Factor),
		Net90:             math.Ceil(final * net90Factor),
	}
}

// SovItemPrice allocates the final price to one SOV row proportionally to
// its labor-unit share of the total SOV work hours. Informational only; the
// allocations are not re-summed into any total.
func SovItemPrice(final, workSovHours, laborUnit float64) float64 {
	if workSovHours == 0 {
		return 0
	}
	return final / workSovHours * laborUnit
}

// Recalculate rebuilds every derived value in the document: row extensions
// feed the hours summary, the labor-tier split and the travel ledgers, and
// those feed the pricing rollup. CalculatedValues and the derived
// hours-summary fields are overwritten wholesale.
func Recalculate(doc *EstimateDocument) {
	sov := sumLineItems(doc.SovItems)
	nonSov := sumLineItems(doc.NonSovItems)

	hs := &doc.HoursSummary
	hs.WorkSovHours = sov.laborHours
	hs.WorkHours = sov.laborHours + nonSov.laborHours

	split := SplitLaborHours(hs.WorkHours, hs.HoursPerDay)

	RecalcTravel(doc.TravelData)
	hs.TravelHours = TotalTravelHours(doc.TravelData)
	hs.TotalHours = hs.WorkHours + hs.TravelHours
	if hs.HoursPerDay > 0 && hs.WorkHours > 0 {
		hs.TotalDays = math.Ceil(hs.WorkHours / hs.HoursPerDay)
	} else {
		hs.TotalDays = 0
	}

	doc.CalculatedValues = CalcRollup(RollupInput{
		TotalMaterial:   sov.material + nonSov.material,
		TotalExpense:    sov.expense + nonSov.expense,
		NonSovExpense:   nonSov.expense,
		Labor:           split,
		TotalTravelCost: TotalTravelCost(doc.TravelData),
	})

	prices := make([]float64, len(doc.SovItems))
	for i, item := range doc.SovItems {
		ext := CalcLineItemExtensions(item)
		prices[i] = SovItemPrice(doc.CalculatedValues.Final, hs.WorkSovHours, ext.LaborUnit)
	}
	doc.CalculatedValues.SovItemPrices = prices
}
