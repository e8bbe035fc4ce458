package services

import "testing"

func TestRecalcTravelMileageCascade(t *testing.T) {
	td := DefaultTravelData()
	td.TravelExpense[0] = TravelExpenseEntry{
		OneWayMiles: 100,
		Trips:       2,
		NumVehicles: 1,
		Rate:        0.67,
	}
	td.TravelTime[0].NumMen = 3
	td.TravelTime[0].Rate = 120

	RecalcTravel(td)

	e := td.TravelExpense[0]
	if e.RoundTripMiles != 200 {
		t.Errorf("RoundTripMiles = %v, want 200", e.RoundTripMiles)
	}
	if e.TotalVehicleMiles != 400 {
		t.Errorf("TotalVehicleMiles = %v, want 400", e.TotalVehicleMiles)
	}
	if e.TotalMiles != 400 {
		t.Errorf("TotalMiles = %v, want 400", e.TotalMiles)
	}
	if e.VehicleTravelCost != 268 {
		t.Errorf("VehicleTravelCost = %v, want 268", e.VehicleTravelCost)
	}

	// 100 miles at 50 mph derives 2 one-way hours, and trips follow the
	// mileage ledger.
	tt := td.TravelTime[0]
	if tt.OneWayHours != 2 {
		t.Errorf("OneWayHours = %v, want 2", tt.OneWayHours)
	}
	if tt.Trips != 2 {
		t.Errorf("Trips = %v, want 2", tt.Trips)
	}
	if tt.RoundTripHours != 4 {
		t.Errorf("RoundTripHours = %v, want 4", tt.RoundTripHours)
	}
	if tt.TotalTravelHours != 8 {
		t.Errorf("TotalTravelHours = %v, want 8", tt.TotalTravelHours)
	}
	if tt.GrandTotalTravelHours != 24 {
		t.Errorf("GrandTotalTravelHours = %v, want 24", tt.GrandTotalTravelHours)
	}
	if tt.TotalTravelLabor != 2880 {
		t.Errorf("TotalTravelLabor = %v, want 2880", tt.TotalTravelLabor)
	}
}

func TestRecalcTravelManualHoursNotOverwritten(t *testing.T) {
	td := DefaultTravelData()
	td.TravelExpense[0].OneWayMiles = 100
	OverrideTravelTimeHours(td, 3.5)

	if td.TravelTime[0].OneWayHours != 3.5 {
		t.Errorf("OneWayHours = %v, want manual 3.5", td.TravelTime[0].OneWayHours)
	}

	// Still pinned after another recalc pass.
	RecalcTravel(td)
	if td.TravelTime[0].OneWayHours != 3.5 {
		t.Errorf("OneWayHours after recalc = %v, want manual 3.5", td.TravelTime[0].OneWayHours)
	}

	ClearTravelTimeOverride(td)
	if td.TravelTime[0].OneWayHours != 2 {
		t.Errorf("OneWayHours after clearing override = %v, want derived 2", td.TravelTime[0].OneWayHours)
	}
}

func TestSetGroundCrewSize(t *testing.T) {
	td := DefaultTravelData()
	SetAirCrewSize(td, 2)
	SetGroundCrewSize(td, 4)

	if td.TravelTime[0].NumMen != 4 {
		t.Errorf("TravelTime NumMen = %v, want 4", td.TravelTime[0].NumMen)
	}
	if td.PerDiem[0].NumMen != 4 {
		t.Errorf("PerDiem NumMen = %v, want 4", td.PerDiem[0].NumMen)
	}
	if td.Lodging[0].NumMen != 4 {
		t.Errorf("Lodging NumMen = %v, want 4", td.Lodging[0].NumMen)
	}
	if td.LocalMiles[0].NumVehicles != 4 {
		t.Errorf("LocalMiles NumVehicles = %v, want 4", td.LocalMiles[0].NumVehicles)
	}

	// The air group keeps its own crew size.
	if td.Flights[0].NumMen != 2 {
		t.Errorf("Flights NumMen = %v, want 2", td.Flights[0].NumMen)
	}
	if td.AirTravelTime[0].NumMen != 2 {
		t.Errorf("AirTravelTime NumMen = %v, want 2", td.AirTravelTime[0].NumMen)
	}
}

func TestSetAirCrewSizeDoesNotTouchGround(t *testing.T) {
	td := DefaultTravelData()
	SetGroundCrewSize(td, 3)
	SetAirCrewSize(td, 5)

	if td.Flights[0].NumMen != 5 || td.AirTravelTime[0].NumMen != 5 {
		t.Errorf("air group = %v/%v, want 5/5", td.Flights[0].NumMen, td.AirTravelTime[0].NumMen)
	}
	if td.TravelTime[0].NumMen != 3 {
		t.Errorf("TravelTime NumMen = %v, want 3", td.TravelTime[0].NumMen)
	}
	if td.LocalMiles[0].NumVehicles != 3 {
		t.Errorf("LocalMiles NumVehicles = %v, want 3", td.LocalMiles[0].NumVehicles)
	}
}

func TestTotalTravelCost(t *testing.T) {
	td := DefaultTravelData()
	td.TravelExpense[0] = TravelExpenseEntry{OneWayMiles: 50, Trips: 1, NumVehicles: 1, Rate: 1}   // 100
	td.TravelTime[0].NumMen = 2                                                                    //
	td.TravelTime[0].Rate = 100                                                                    // 1h one-way * 2 * 1 trip * 2 men * 100 = 400
	td.PerDiem[0] = PerDiemEntry{NumDays: 5, DailyRate: 60, NumMen: 2}                             // 600
	td.Lodging[0] = LodgingEntry{NumNights: 4, NumMen: 2, Rate: 150}                               // 1200
	td.LocalMiles[0] = LocalMilesEntry{NumDays: 5, MilesPerDay: 20, NumVehicles: 1, Rate: 1}       // 100
	td.Flights[0] = FlightsEntry{NumFlights: 2, NumMen: 2, Rate: 400, LuggageFees: 50}             // 1800
	td.AirTravelTime[0] = AirTravelTimeEntry{OneWayHoursInAir: 3, Trips: 2, NumMen: 2, Rate: 100}  // 2400
	td.RentalCar[0] = RentalCarEntry{NumCars: 1, Rate: 350}                                        // 350

	RecalcTravel(td)

	want := 100.0 + 400 + 600 + 1200 + 100 + 1800 + 2400 + 350
	if got := TotalTravelCost(td); got != want {
		t.Errorf("TotalTravelCost = %v, want %v", got, want)
	}

	// Hours summary pulls only the two time ledgers: 4 + 24.
	if got := TotalTravelHours(td); got != 28 {
		t.Errorf("TotalTravelHours = %v, want 28", got)
	}
}

func TestTravelNilSafety(t *testing.T) {
	RecalcTravel(nil)
	SetGroundCrewSize(nil, 3)
	SetAirCrewSize(nil, 3)
	SetOneWayMiles(nil, 100)
	SetTrips(nil, 2)
	OverrideTravelTimeHours(nil, 1)
	ClearTravelTimeOverride(nil)

	if TotalTravelCost(nil) != 0 {
		t.Error("TotalTravelCost(nil) should be 0")
	}
	if TotalTravelHours(nil) != 0 {
		t.Error("TotalTravelHours(nil) should be 0")
	}
}

func TestDefaultTravelDataHasOneEntryPerLedger(t *testing.T) {
	td := DefaultTravelData()
	if len(td.TravelExpense) != 1 || len(td.TravelTime) != 1 || len(td.PerDiem) != 1 ||
		len(td.Lodging) != 1 || len(td.LocalMiles) != 1 || len(td.Flights) != 1 ||
		len(td.AirTravelTime) != 1 || len(td.RentalCar) != 1 {
		t.Errorf("expected one entry per ledger, got %+v", td)
	}
}
