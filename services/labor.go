package services

// LaborSplit buckets total work hours into the three billing tiers.
type LaborSplit struct {
	StraightTimeHours float64
	OvertimeHours     float64
	DoubleTimeHours   float64
}

// Daily tier thresholds: the first 8 hours of a day bill straight time,
// hours 8-12 bill overtime, anything past 12 bills double time.
const (
	straightTimeCap = 8
	overtimeCap     = 12
)

// SplitLaborHours walks conceptual days of size hoursPerDay until the total
// is exhausted and allocates each day's hours across the tiers. Day-boundary
// placement matters: 20 hours at 8 per day is all straight time, while 20
// hours at 10 per day accrues overtime every day.
//
// Zero totalHours or a non-positive hoursPerDay yields an all-zero split.
func SplitLaborHours(totalHours, hoursPerDay float64) LaborSplit {
	var split LaborSplit
	if totalHours <= 0 || hoursPerDay <= 0 {
		return split
	}

	remaining := totalHours
	for remaining > 0 {
		hoursThisDay := hoursPerDay
		if remaining < hoursPerDay {
			hoursThisDay = remaining
		}

		switch {
		case hoursThisDay <= straightTimeCap:
			split.StraightTimeHours += hoursThisDay
		case hoursThisDay <= overtimeCap:
			split.StraightTimeHours += straightTimeCap
			split.OvertimeHours += hoursThisDay - straightTimeCap
		default:
			split.StraightTimeHours += straightTimeCap
			split.OvertimeHours += overtimeCap - straightTimeCap
			split.DoubleTimeHours += hoursThisDay - overtimeCap
		}

		remaining -= hoursThisDay
	}

	return split
}

// TotalHours returns the sum of the three buckets. For any valid input this
// equals the totalHours passed to SplitLaborHours.
func (s LaborSplit) TotalHours() float64 {
	return s.StraightTimeHours + s.OvertimeHours + s.DoubleTimeHours
}
