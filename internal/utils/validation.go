package utils

import (
	"fmt"
	"time"

	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/domain"
)

// ValidateShiftTime 检查班次的开始和结束时间格式，并且结束时间必须晚于开始时间
func ValidateShiftTime(shift *domain.Shift) error {
	startTime, err := time.Parse("15:04", shift.StartTime)
	if err != nil {
		return fmt.Errorf("班次 %s 的开始时间格式错误", shift.ShiftID)
	}
	endTime, err := time.Parse("15:04", shift.EndTime)
	if err != nil {
		return fmt.Errorf("班次 %s 的结束时间格式错误", shift.ShiftID)
	}
	if !endTime.After(startTime) {
		return fmt.Errorf("班次 %s 的结束时间必须晚于开始时间", shift.ShiftID)
	}
	return nil
}

func ValidateShiftDate(shift *domain.Shift) error {
	if _, err := time.Parse(time.DateOnly, shift.Date); err != nil {
		return fmt.Errorf("班次 %s 的日期格式错误", shift.ShiftID)
	}
	return nil
}

func ValidateShift(shift *domain.Shift) error {
	if shift.ShiftID == "" {
		return fmt.Errorf("班次编号不能为空")
	}
	if err := ValidateShiftDate(shift); err != nil {
		return err
	}
	return ValidateShiftTime(shift)
}
