package services

import "testing"

func TestCalcLineItemExtensions(t *testing.T) {
	tests := []struct {
		name           string
		item           LineItem
		wantMaterial   float64
		wantExpense    float64
		wantLaborUnit  float64
		wantLaborTotal float64
	}{
		{
			"basic row",
			LineItem{Quantity: 4, MaterialPrice: 250, ExpensePrice: 50, LaborMen: 2, LaborHours: 3},
			1000, 200, 6, 24,
		},
		{
			"zero quantity zeroes money but not labor unit",
			LineItem{Quantity: 0, MaterialPrice: 100, ExpensePrice: 10, LaborMen: 2, LaborHours: 5},
			0, 0, 10, 0,
		},
		{
			"no labor",
			LineItem{Quantity: 3, MaterialPrice: 10, ExpensePrice: 20},
			30, 60, 0, 0,
		},
		{
			"negative quantity propagates sign",
			LineItem{Quantity: -1, MaterialPrice: 500, ExpensePrice: 100, LaborMen: 1, LaborHours: 8},
			-500, -100, 8, -8,
		},
		{
			"fractional values",
			LineItem{Quantity: 2.5, MaterialPrice: 10.4, ExpensePrice: 4, LaborMen: 1.5, LaborHours: 2},
			26, 10, 3, 7.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalcLineItemExtensions(tt.item)
			if got.MaterialExtension != tt.wantMaterial {
				t.Errorf("MaterialExtension = %v, want %v", got.MaterialExtension, tt.wantMaterial)
			}
			if got.ExpenseExtension != tt.wantExpense {
				t.Errorf("ExpenseExtension = %v, want %v", got.ExpenseExtension, tt.wantExpense)
			}
			if got.LaborUnit != tt.wantLaborUnit {
				t.Errorf("LaborUnit = %v, want %v", got.LaborUnit, tt.wantLaborUnit)
			}
			if got.LaborTotal != tt.wantLaborTotal {
				t.Errorf("LaborTotal = %v, want %v", got.LaborTotal, tt.wantLaborTotal)
			}
		})
	}
}

func TestSumLineItems(t *testing.T) {
	items := []LineItem{
		{Quantity: 2, MaterialPrice: 100, ExpensePrice: 25, LaborMen: 2, LaborHours: 4},
		{Quantity: 1, MaterialPrice: 500, ExpensePrice: 0, LaborMen: 1, LaborHours: 8},
		{}, // blank row contributes nothing
	}

	sums := sumLineItems(items)
	if sums.material != 700 {
		t.Errorf("material = %v, want 700", sums.material)
	}
	if sums.expense != 50 {
		t.Errorf("expense = %v, want 50", sums.expense)
	}
	// 2*(2*4) + 1*(1*8) = 24
	if sums.laborHours != 24 {
		t.Errorf("laborHours = %v, want 24", sums.laborHours)
	}
}

func TestSumLineItemsEmpty(t *testing.T) {
	sums := sumLineItems(nil)
	if sums.material != 0 || sums.expense != 0 || sums.laborHours != 0 {
		t.Errorf("expected zero sums for empty list, got %+v", sums)
	}
}
