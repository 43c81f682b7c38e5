package scheduler

import (
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/domain"
)

// memStore 是测试用的内存 Store，*Err 字段用来注入存储错误
type memStore struct {
	employees   []*domain.Employee
	shifts      []*domain.Shift
	assignments []*domain.Assignment
	settings    *domain.Settings

	EmployeesErr   error
	ShiftsErr      error
	AssignmentsErr error
	ConfigErr      error
	AddErr         error

	AddAssignmentFunc func(assignment *domain.Assignment) error
}

func (m *memStore) GetAllEmployees() ([]*domain.Employee, error) {
	if m.EmployeesErr != nil {
		return nil, m.EmployeesErr
	}
	return append([]*domain.Employee{}, m.employees...), nil
}

func (m *memStore) FindEmployee(employeeID string) (*domain.Employee, error) {
	employees, err := m.GetAllEmployees()
	if err != nil {
		return nil, err
	}
	for _, e := range employees {
		if e.EmployeeID == employeeID {
			return e, nil
		}
	}
	return nil, nil
}

func (m *memStore) AddEmployee(employee *domain.Employee) error {
	if m.AddErr != nil {
		return m.AddErr
	}
	m.employees = append(m.employees, employee)
	return nil
}

func (m *memStore) GetAllShifts() ([]*domain.Shift, error) {
	if m.ShiftsErr != nil {
		return nil, m.ShiftsErr
	}
	return append([]*domain.Shift{}, m.shifts...), nil
}

func (m *memStore) FindShift(shiftID string) (*domain.Shift, error) {
	shifts, err := m.GetAllShifts()
	if err != nil {
		return nil, err
	}
	for _, s := range shifts {
		if s.ShiftID == shiftID {
			return s, nil
		}
	}
	return nil, nil
}

func (m *memStore) GetAllAssignments() ([]*domain.Assignment, error) {
	if m.AssignmentsErr != nil {
		return nil, m.AssignmentsErr
	}
	return append([]*domain.Assignment{}, m.assignments...), nil
}

func (m *memStore) GetAssignmentsForEmployee(employeeID string) ([]*domain.Assignment, error) {
	assignments, err := m.GetAllAssignments()
	if err != nil {
		return nil, err
	}
	result := make([]*domain.Assignment, 0)
	for _, a := range assignments {
		if a.EmployeeID == employeeID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *memStore) AddAssignment(assignment *domain.Assignment) error {
	if m.AddAssignmentFunc != nil {
		return m.AddAssignmentFunc(assignment)
	}
	if m.AddErr != nil {
		return m.AddErr
	}
	m.assignments = append(m.assignments, assignment)
	return nil
}

func (m *memStore) GetConfig() (*domain.Settings, error) {
	if m.ConfigErr != nil {
		return nil, m.ConfigErr
	}
	return m.settings, nil
}

type recordingNotifier struct {
	messages []domain.NotificationMessage
	err      error
}

func (n *recordingNotifier) Notify(msg domain.NotificationMessage) error {
	n.messages = append(n.messages, msg)
	return n.err
}

func hours(h float64) *float64 {
	return &h
}
