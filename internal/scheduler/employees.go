package scheduler

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/domain"
)

const employeeIDTag = "E"

func (s *Scheduler) ListEmployees() ([]*domain.Employee, error) {
	return s.store.GetAllEmployees()
}

// GenerateNextEmployeeID 返回 "E" + (现有最大编号 + 1)，至少补零到 3 位。
// 去掉首字符后不是纯数字的编号会被忽略。
func GenerateNextEmployeeID(employees []*domain.Employee) string {
	maxNumber := 0
	for _, employee := range employees {
		number, ok := employeeNumber(employee.EmployeeID)
		if ok && number > maxNumber {
			maxNumber = number
		}
	}

	return fmt.Sprintf("%s%03d", employeeIDTag, maxNumber+1)
}

func employeeNumber(employeeID string) (int, bool) {
	if len(employeeID) < 2 {
		return 0, false
	}

	digits := employeeID[1:]
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, false
		}
	}

	number, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return number, true
}

// CreateEmployee 不检查姓名和电话，原样保存
func (s *Scheduler) CreateEmployee(name, phone string) (*domain.Employee, error) {
	unlock, err := s.locker.Lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	employees, err := s.store.GetAllEmployees()
	if err != nil {
		return nil, err
	}

	employee := &domain.Employee{
		EmployeeID: GenerateNextEmployeeID(employees),
		Name:       name,
		Phone:      phone,
	}
	if err := s.store.AddEmployee(employee); err != nil {
		return nil, err
	}

	slog.Info("已添加员工", "employeeId", employee.EmployeeID)
	s.notify(domain.NotificationMessage{
		Type: domain.NotificationEmployeeCreated,
		Data: domain.EmployeeCreatedData{
			EmployeeID: employee.EmployeeID,
			Name:       employee.Name,
			Phone:      employee.Phone,
		},
	})

	return employee, nil
}
