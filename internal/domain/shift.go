package domain

// Shift 的 StartTime 和 EndTime 都是 24 小时制的 "HH:MM"
type Shift struct {
	ShiftID   string `json:"shiftId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}
