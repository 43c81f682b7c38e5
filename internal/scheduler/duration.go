package scheduler

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidShiftTime = errors.New("invalid shift time")

// ComputeShiftDuration 返回两个 "HH:MM" 之间的小时数。
// 不校验 endTime 是否晚于 startTime，反过来时结果为负数。
func ComputeShiftDuration(startTime, endTime string) (float64, error) {
	startMinutes, err := minutesOfDay(startTime)
	if err != nil {
		return 0, err
	}
	endMinutes, err := minutesOfDay(endTime)
	if err != nil {
		return 0, err
	}

	return float64(endMinutes-startMinutes) / 60, nil
}

func minutesOfDay(clock string) (int, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidShiftTime, clock)
	}
	return t.Hour()*60 + t.Minute(), nil
}
