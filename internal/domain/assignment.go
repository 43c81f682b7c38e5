package domain

type Assignment struct {
	EmployeeID string `json:"employeeId"`
	ShiftID    string `json:"shiftId"`
}

const (
	MessageEmployeeNotFound     = "Employee does not exist"
	MessageShiftNotFound        = "Shift does not exist"
	MessageAlreadyAssigned      = "Employee already assigned to shift"
	MessageDailyHourLimitExceed = "Daily hour limit exceeded"
	MessageShiftRecorded        = "Shift Recorded"
)

// AssignResult 是分配操作的结果，校验失败也通过它返回而不是 error
type AssignResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}
