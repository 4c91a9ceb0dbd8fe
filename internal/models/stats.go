package models

// ParticipantStats feeds the participant dashboard chart. ChartData rows are
// [label, value] pairs; the first row is always the header.
type ParticipantStats struct {
	TotalFees  float64         `json:"totalFees"`
	TotalCamps int             `json:"totalCamps"`
	ChartData  [][]interface{} `json:"chartData"`
}

var ChartHeader = []interface{}{"Camp", "Fees"}

func NewParticipantStats(bookings []Booking) ParticipantStats {
	stats := ParticipantStats{
		TotalCamps: len(bookings),
		ChartData:  make([][]interface{}, 0, len(bookings)+1),
	}
	stats.ChartData = append(stats.ChartData, ChartHeader)
	for _, b := range bookings {
		fee := b.Fee()
		stats.TotalFees += fee
		stats.ChartData = append(stats.ChartData, []interface{}{b.CampName, fee})
	}
	return stats
}
