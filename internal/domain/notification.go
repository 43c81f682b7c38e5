package domain

const (
	NotificationEmployeeCreated    = "employee_created"
	NotificationAssignmentRecorded = "assignment_recorded"
)

type NotificationMessage struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type EmployeeCreatedData struct {
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
}

type AssignmentRecordedData struct {
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	ShiftID      string `json:"shiftId"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
}
