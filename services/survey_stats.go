package services

// SurveyResponse holds the four 1-5 ratings from one satisfaction survey.
type SurveyResponse struct {
	Quality       float64
	Timeliness    float64
	Communication float64
	Value         float64
}

// SurveyStats aggregates survey responses for a customer.
type SurveyStats struct {
	Responses        int     `json:"responses"`
	AvgQuality       float64 `json:"avgQuality"`
	AvgTimeliness    float64 `json:"avgTimeliness"`
	AvgCommunication float64 `json:"avgCommunication"`
	AvgValue         float64 `json:"avgValue"`
	AvgOverall       float64 `json:"avgOverall"`
}

// CalcSurveyStats averages each rating category across responses. Zero
// responses yields all-zero stats rather than NaN.
func CalcSurveyStats(responses []SurveyResponse) SurveyStats {
	stats := SurveyStats{Responses: len(responses)}
	if len(responses) == 0 {
		return stats
	}

	for _, r := range responses {
		stats.AvgQuality += r.Quality
		stats.AvgTimeliness += r.Timeliness
		stats.AvgCommunication += r.Communication
		stats.AvgValue += r.Value
	}

	n := float64(len(responses))
	stats.AvgQuality /= n
	stats.AvgTimeliness /= n
	stats.AvgCommunication /= n
	stats.AvgValue /= n
	stats.AvgOverall = (stats.AvgQuality + stats.AvgTimeliness + stats.AvgCommunication + stats.AvgValue) / 4

	return stats
}
