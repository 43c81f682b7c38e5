package scheduler

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/domain"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/repository"
)

// ErrDanglingAssignment 只在 StrictJoin 模式下返回
var ErrDanglingAssignment = errors.New("assignment references a missing shift")

func rejected(message string) *domain.AssignResult {
	return &domain.AssignResult{OK: false, Message: message}
}

// shiftIndex 在一次操作内只读取一次班次容器
func (s *Scheduler) shiftIndex() (map[string]*domain.Shift, error) {
	shifts, err := s.store.GetAllShifts()
	if err != nil {
		return nil, err
	}

	index := make(map[string]*domain.Shift, len(shifts))
	for _, shift := range shifts {
		// 和线性查找保持一致，重复 ID 以第一条为准
		if _, exists := index[shift.ShiftID]; !exists {
			index[shift.ShiftID] = shift
		}
	}
	return index, nil
}

func (s *Scheduler) resolveShift(shifts map[string]*domain.Shift, assignment *domain.Assignment) (*domain.Shift, error) {
	shift, ok := shifts[assignment.ShiftID]
	if !ok && s.parameters.StrictJoin {
		return nil, fmt.Errorf("%w: employee %s, shift %s", ErrDanglingAssignment, assignment.EmployeeID, assignment.ShiftID)
	}
	return shift, nil
}

func (s *Scheduler) hoursOnDate(assignments []*domain.Assignment, shifts map[string]*domain.Shift, date string) (float64, error) {
	total := 0.0
	for _, assignment := range assignments {
		shift, err := s.resolveShift(shifts, assignment)
		if err != nil {
			return 0, err
		}
		if shift == nil || shift.Date != date {
			continue
		}

		hours, err := ComputeShiftDuration(shift.StartTime, shift.EndTime)
		if err != nil {
			return 0, fmt.Errorf("shift %s: %w", shift.ShiftID, err)
		}
		total += hours
	}
	return total, nil
}

// GetHoursForEmployeeOnDate 累加员工在某一天所有班次的时长
func (s *Scheduler) GetHoursForEmployeeOnDate(employeeID, date string) (float64, error) {
	assignments, err := s.store.GetAssignmentsForEmployee(employeeID)
	if err != nil {
		return 0, err
	}

	shifts, err := s.shiftIndex()
	if err != nil {
		return 0, err
	}

	return s.hoursOnDate(assignments, shifts, date)
}

// AssignEmployeeToShift 依次校验，遇到第一个不满足的条件就返回。
// 校验失败通过 AssignResult 返回，error 只表示存储等致命错误。
func (s *Scheduler) AssignEmployeeToShift(employeeID, shiftID string) (*domain.AssignResult, error) {
	unlock, err := s.locker.Lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	employee, err := s.store.FindEmployee(employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return rejected(domain.MessageEmployeeNotFound), nil
	}

	shift, err := s.store.FindShift(shiftID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return rejected(domain.MessageShiftNotFound), nil
	}

	assignments, err := s.store.GetAssignmentsForEmployee(employeeID)
	if err != nil {
		return nil, err
	}
	for _, assignment := range assignments {
		if assignment.ShiftID == shiftID {
			return rejected(domain.MessageAlreadyAssigned), nil
		}
	}

	if s.parameters.EnforceDailyCap {
		exceeded, err := s.exceedsDailyCap(assignments, shift)
		if err != nil {
			return nil, err
		}
		if exceeded {
			return rejected(domain.MessageDailyHourLimitExceed), nil
		}
	}

	assignment := &domain.Assignment{
		EmployeeID: employeeID,
		ShiftID:    shiftID,
	}
	if err := s.store.AddAssignment(assignment); err != nil {
		if errors.Is(err, repository.ErrDuplicateAssignment) {
			return rejected(domain.MessageAlreadyAssigned), nil
		}
		return nil, err
	}

	slog.Info("已记录排班", "employeeId", employeeID, "shiftId", shiftID, "date", shift.Date)
	s.notify(domain.NotificationMessage{
		Type: domain.NotificationAssignmentRecorded,
		Data: domain.AssignmentRecordedData{
			EmployeeID:   employee.EmployeeID,
			EmployeeName: employee.Name,
			ShiftID:      shift.ShiftID,
			Date:         shift.Date,
			StartTime:    shift.StartTime,
			EndTime:      shift.EndTime,
		},
	})

	return &domain.AssignResult{OK: true, Message: domain.MessageShiftRecorded}, nil
}

// exceedsDailyCap 没有配置 maxDailyHours 时视为不限制
func (s *Scheduler) exceedsDailyCap(assignments []*domain.Assignment, shift *domain.Shift) (bool, error) {
	settings, err := s.store.GetConfig()
	if err != nil {
		return false, err
	}
	if settings.MaxDailyHours == nil {
		return false, nil
	}

	shifts, err := s.shiftIndex()
	if err != nil {
		return false, err
	}

	currentHours, err := s.hoursOnDate(assignments, shifts, shift.Date)
	if err != nil {
		return false, err
	}

	newHours, err := ComputeShiftDuration(shift.StartTime, shift.EndTime)
	if err != nil {
		return false, fmt.Errorf("shift %s: %w", shift.ShiftID, err)
	}

	return currentHours+newHours > *settings.MaxDailyHours, nil
}

// GetEmployeeSchedule 按分配记录的存储顺序返回班次，不按日期排序
func (s *Scheduler) GetEmployeeSchedule(employeeID string) (*domain.EmployeeSchedule, error) {
	employee, err := s.store.FindEmployee(employeeID)
	if err != nil {
		return nil, err
	}

	schedule := &domain.EmployeeSchedule{
		Exists: employee != nil,
		Rows:   make([]domain.ScheduleRow, 0),
	}
	if employee == nil {
		return schedule, nil
	}

	assignments, err := s.store.GetAssignmentsForEmployee(employeeID)
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return schedule, nil
	}

	shifts, err := s.shiftIndex()
	if err != nil {
		return nil, err
	}

	for _, assignment := range assignments {
		shift, err := s.resolveShift(shifts, assignment)
		if err != nil {
			return nil, err
		}
		if shift == nil {
			continue
		}

		schedule.Rows = append(schedule.Rows, domain.ScheduleRow{
			Date:      shift.Date,
			StartTime: shift.StartTime,
			EndTime:   shift.EndTime,
		})
	}

	return schedule, nil
}
