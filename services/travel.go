package services

// averageTravelSpeed is the fixed miles-per-hour assumption used to derive
// drive time from one-way mileage when the user has not overridden it.
const averageTravelSpeed = 50

// TravelExpenseEntry tracks vehicle mileage cost.
type TravelExpenseEntry struct {
	OneWayMiles       float64 `json:"oneWayMiles"`
	Trips             float64 `json:"trips"`
	NumVehicles       float64 `json:"numVehicles"`
	Rate              float64 `json:"rate"`
	RoundTripMiles    float64 `json:"roundTripMiles"`
	TotalVehicleMiles float64 `json:"totalVehicleMiles"`
	TotalMiles        float64 `json:"totalMiles"`
	VehicleTravelCost float64 `json:"vehicleTravelCost"`
}

// TravelTimeEntry tracks paid drive time. OneWayHours is derived from the
// travel-expense mileage unless ManualHours is set.
type TravelTimeEntry struct {
	OneWayHours           float64 `json:"oneWayHours"`
	ManualHours           bool    `json:"manualHours"`
	Trips                 float64 `json:"trips"`
	NumMen                float64 `json:"numMen"`
	Rate                  float64 `json:"rate"`
	RoundTripHours        float64 `json:"roundTripHours"`
	TotalTravelHours      float64 `json:"totalTravelHours"`
	GrandTotalTravelHours float64 `json:"grandTotalTravelHours"`
	TotalTravelLabor      float64 `json:"totalTravelLabor"`
}

// PerDiemEntry tracks daily allowances.
type PerDiemEntry struct {
	NumDays            float64 `json:"numDays"`
	DailyRate          float64 `json:"dailyRate"`
	NumMen             float64 `json:"numMen"`
	TotalPerDiemPerMan float64 `json:"totalPerDiemPerMan"`
	TotalPerDiem       float64 `json:"totalPerDiem"`
}

// LodgingEntry tracks hotel nights.
type LodgingEntry struct {
	NumNights   float64 `json:"numNights"`
	NumMen      float64 `json:"numMen"`
	Rate        float64 `json:"rate"`
	ManNights   float64 `json:"manNights"`
	TotalAmount float64 `json:"totalAmount"`
}

// LocalMilesEntry tracks on-site driving.
type LocalMilesEntry struct {
	NumDays             float64 `json:"numDays"`
	MilesPerDay         float64 `json:"milesPerDay"`
	NumVehicles         float64 `json:"numVehicles"`
	Rate                float64 `json:"rate"`
	TotalMiles          float64 `json:"totalMiles"`
	TotalLocalMilesCost float64 `json:"totalLocalMilesCost"`
}

// FlightsEntry tracks airfare and luggage fees.
type FlightsEntry struct {
	NumFlights        float64 `json:"numFlights"`
	NumMen            float64 `json:"numMen"`
	Rate              float64 `json:"rate"`
	LuggageFees       float64 `json:"luggageFees"`
	TotalFlightAmount float64 `json:"totalFlightAmount"`
}

// AirTravelTimeEntry tracks paid time in the air and at the terminal.
type AirTravelTimeEntry struct {
	OneWayHoursInAir      float64 `json:"oneWayHoursInAir"`
	Trips                 float64 `json:"trips"`
	NumMen                float64 `json:"numMen"`
	Rate                  float64 `json:"rate"`
	RoundTripTerminalTime float64 `json:"roundTripTerminalTime"`
	TotalTravelHours      float64 `json:"totalTravelHours"`
	GrandTotalTravelHours float64 `json:"grandTotalTravelHours"`
	TotalTravelLabor      float64 `json:"totalTravelLabor"`
}

// RentalCarEntry tracks rental vehicles.
type RentalCarEntry struct {
	NumCars     float64 `json:"numCars"`
	Rate        float64 `json:"rate"`
	TotalAmount float64 `json:"totalAmount"`
}

// TravelData holds the eight travel ledgers. Each ledger carries one entry
// in normal use but is stored as a sequence.
//
// The ground ledgers (travelExpense, travelTime, perDiem, lodging,
// localMiles) share one crew size; flights and airTravelTime share another.
// The two groups never synchronize with each other.
type TravelData struct {
	TravelExpense []TravelExpenseEntry `json:"travelExpense"`
	TravelTime    []TravelTimeEntry    `json:"travelTime"`
	PerDiem       []PerDiemEntry       `json:"perDiem"`
	Lodging       []LodgingEntry       `json:"lodging"`
	LocalMiles    []LocalMilesEntry    `json:"localMiles"`
	Flights       []FlightsEntry       `json:"flights"`
	AirTravelTime []AirTravelTimeEntry `json:"airTravelTime"`
	RentalCar     []RentalCarEntry     `json:"rentalCar"`
}

// DefaultTravelData returns travel ledgers with one zeroed entry each.
func DefaultTravelData() *TravelData {
	td := &TravelData{}
	normalizeTravelData(td)
	return td
}

// normalizeTravelData guarantees every ledger has at least one entry so the
// sync rules always have a target row.
func normalizeTravelData(td *TravelData) {
	if len(td.TravelExpense) == 0 {
		td.TravelExpense = []TravelExpenseEntry{{}}
	}
	if len(td.TravelTime) == 0 {
		td.TravelTime = []TravelTimeEntry{{}}
	}
	if len(td.PerDiem) == 0 {
		td.PerDiem = []PerDiemEntry{{}}
	}
	if len(td.Lodging) == 0 {
		td.Lodging = []LodgingEntry{{}}
	}
	if len(td.LocalMiles) == 0 {
		td.LocalMiles = []LocalMilesEntry{{}}
	}
	if len(td.Flights) == 0 {
		td.Flights = []FlightsEntry{{}}
	}
	if len(td.AirTravelTime) == 0 {
		td.AirTravelTime = []AirTravelTimeEntry{{}}
	}
	if len(td.RentalCar) == 0 {
		td.RentalCar = []RentalCarEntry{{}}
	}
}

// RecalcTravel recomputes every derived field across all eight ledgers.
// Linked fields are pushed first (trips and drive time flow from the
// travel-expense ledger into travel time), then each ledger's own formulas
// run.
func RecalcTravel(td *TravelData) {
	if td == nil {
		return
	}
	normalizeTravelData(td)

	for i := range td.TravelExpense {
		e := &td.TravelExpense[i]
		e.RoundTripMiles = e.OneWayMiles * 2
		e.TotalVehicleMiles = e.Trips * e.RoundTripMiles
		e.TotalMiles = e.TotalVehicleMiles * e.NumVehicles
		e.VehicleTravelCost = e.TotalMiles * e.Rate
	}

	// The first travel-expense entry drives trips and derived hours for the
	// matching travel-time entry.
	lead := td.TravelExpense[0]
	for i := range td.TravelTime {
		t := &td.TravelTime[i]
		t.Trips = lead.Trips
		if !t.ManualHours {
			t.OneWayHours = lead.OneWayMiles / averageTravelSpeed
		}
		t.RoundTripHours = t.OneWayHours * 2
		t.TotalTravelHours = t.Trips * t.RoundTripHours
		t.GrandTotalTravelHours = t.TotalTravelHours * t.NumMen
		t.TotalTravelLabor = t.GrandTotalTravelHours * t.Rate
	}

	for i := range td.PerDiem {
		p := &td.PerDiem[i]
		p.TotalPerDiemPerMan = p.NumDays * p.DailyRate
		p.TotalPerDiem = p.TotalPerDiemPerMan * p.NumMen
	}

	for i := range td.Lodging {
		l := &td.Lodging[i]
		l.ManNights = l.NumNights * l.NumMen
		l.TotalAmount = l.ManNights * l.Rate
	}

	for i := range td.LocalMiles {
		m := &td.LocalMiles[i]
		m.TotalMiles = m.NumDays * m.MilesPerDay * m.NumVehicles
		m.TotalLocalMilesCost = m.TotalMiles * m.Rate
	}

	for i := range td.Flights {
		f := &td.Flights[i]
		f.TotalFlightAmount = f.NumFlights*f.NumMen*f.Rate + f.NumFlights*f.NumMen*f.LuggageFees
	}

	for i := range td.AirTravelTime {
		a := &td.AirTravelTime[i]
		a.RoundTripTerminalTime = a.OneWayHoursInAir * 2
		a.TotalTravelHours = a.Trips * a.RoundTripTerminalTime
		a.GrandTotalTravelHours = a.TotalTravelHours * a.NumMen
		a.TotalTravelLabor = a.GrandTotalTravelHours * a.Rate
	}

	for i := range td.RentalCar {
		r := &td.RentalCar[i]
		r.TotalAmount = r.NumCars * r.Rate
	}
}

// SetGroundCrewSize propagates a crew-size edit from any ground ledger to
// its siblings: travel time, per diem and lodging take it as number of men,
// local miles takes it as number of vehicles. The air group is untouched.
func SetGroundCrewSize(td *TravelData, men float64) {
	if td == nil {
		return
	}
	normalizeTravelData(td)
	for i := range td.TravelTime {
		td.TravelTime[i].NumMen = men
	}
	for i := range td.PerDiem {
		td.PerDiem[i].NumMen = men
	}
	for i := range td.Lodging {
		td.Lodging[i].NumMen = men
	}
	for i := range td.LocalMiles {
		td.LocalMiles[i].NumVehicles = men
	}
	RecalcTravel(td)
}

// SetAirCrewSize propagates a crew-size edit between flights and air travel
// time. The ground group is untouched.
func SetAirCrewSize(td *TravelData, men float64) {
	if td == nil {
		return
	}
	normalizeTravelData(td)
	for i := range td.Flights {
		td.Flights[i].NumMen = men
	}
	for i := range td.AirTravelTime {
		td.AirTravelTime[i].NumMen = men
	}
	RecalcTravel(td)
}

// SetOneWayMiles updates the travel-expense mileage and cascades the derived
// drive time into the travel-time ledger.
func SetOneWayMiles(td *TravelData, miles float64) {
	if td == nil {
		return
	}
	normalizeTravelData(td)
	for i := range td.TravelExpense {
		td.TravelExpense[i].OneWayMiles = miles
	}
	RecalcTravel(td)
}

// SetTrips updates the trip count, which flows into both mileage and drive
// time totals.
func SetTrips(td *TravelData, trips float64) {
	if td == nil {
		return
	}
	normalizeTravelData(td)
	for i := range td.TravelExpense {
		td.TravelExpense[i].Trips = trips
	}
	RecalcTravel(td)
}

// OverrideTravelTimeHours pins the one-way drive time to a manual value,
// detaching it from the mileage-derived figure until cleared.
func OverrideTravelTimeHours(td *TravelData, hours float64) {
	if td == nil {
		return
	}
	normalizeTravelData(td)
	for i := range td.TravelTime {
		td.TravelTime[i].OneWayHours = hours
		td.TravelTime[i].ManualHours = true
	}
	RecalcTravel(td)
}

// ClearTravelTimeOverride reverts drive time to the mileage-derived value.
func ClearTravelTimeOverride(td *TravelData) {
	if td == nil {
		return
	}
	normalizeTravelData(td)
	for i := range td.TravelTime {
		td.TravelTime[i].ManualHours = false
	}
	RecalcTravel(td)
}

// TotalTravelCost sums the eight ledgers' terminal cost fields.
func TotalTravelCost(td *TravelData) float64 {
	if td == nil {
		return 0
	}
	var total float64
	for _, e := range td.TravelExpense {
		total += e.VehicleTravelCost
	}
	for _, t := range td.TravelTime {
		total += t.TotalTravelLabor
	}
	for _, p := range td.PerDiem {
		total += p.TotalPerDiem
	}
	for _, l := range td.Lodging {
		total += l.TotalAmount
	}
	for _, m := range td.LocalMiles {
		total += m.TotalLocalMilesCost
	}
	for _, f := range td.Flights {
		total += f.TotalFlightAmount
	}
	for _, a := range td.AirTravelTime {
		total += a.TotalTravelLabor
	}
	for _, r := range td.RentalCar {
		total += r.TotalAmount
	}
	return total
}

// TotalTravelHours sums the paid travel hours from the drive-time and
// air-time ledgers for the hours summary.
func TotalTravelHours(td *TravelData) float64 {
	if td == nil {
		return 0
	}
	var total float64
	for _, t := range td.TravelTime {
		total += t.GrandTotalTravelHours
	}
	for _, a := range td.AirTravelTime {
		total += a.GrandTotalTravelHours
	}
	return total
}
