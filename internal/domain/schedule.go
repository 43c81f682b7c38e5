package domain

type ScheduleRow struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type EmployeeSchedule struct {
	Exists bool          `json:"exists"`
	Rows   []ScheduleRow `json:"rows"`
}
