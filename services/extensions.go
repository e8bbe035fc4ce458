package services

// LineItemExtensions holds the monetary and labor extensions for one row.
type LineItemExtensions struct {
	MaterialExtension float64 // Quantity * MaterialPrice
	ExpenseExtension  float64 // Quantity * ExpensePrice
	LaborUnit         float64 // LaborMen * LaborHours
	LaborTotal        float64 // Quantity * LaborUnit
}

// CalcLineItemExtensions computes the derived row values for a line item.
// Sign propagates: negative quantities or prices produce negative
// extensions, which the engine accepts arithmetically (credit lines are a
// caller-side validation concern).
func CalcLineItemExtensions(item LineItem) LineItemExtensions {
	laborUnit := item.LaborMen * item.LaborHours
	return LineItemExtensions{
		MaterialExtension: item.Quantity * item.MaterialPrice,
		ExpenseExtension:  item.Quantity * item.ExpensePrice,
		LaborUnit:         laborUnit,
		LaborTotal:        item.Quantity * laborUnit,
	}
}

// lineItemSums aggregates extensions across a list of rows.
type lineItemSums struct {
	material   float64
	expense    float64
	laborHours float64
}

func sumLineItems(items []LineItem) lineItemSums {
	var sums lineItemSums
	for _, item := range items {
		ext := CalcLineItemExtensions(item)
		sums.material += ext.MaterialExtension
		sums.expense += ext.ExpenseExtension
		sums.laborHours += ext.LaborTotal
	}
	return sums
}
