package menu

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/domain"
)

// Service 是菜单需要的排班操作，*scheduler.Scheduler 满足这个接口
type Service interface {
	ListEmployees() ([]*domain.Employee, error)
	CreateEmployee(name, phone string) (*domain.Employee, error)
	AssignEmployeeToShift(employeeID, shiftID string) (*domain.AssignResult, error)
	GetEmployeeSchedule(employeeID string) (*domain.EmployeeSchedule, error)
}

const genericFailure = "Something went wrong, please try again."

type Menu struct {
	service Service
	in      *bufio.Scanner
	out     io.Writer
}

func New(service Service, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		service: service,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// Run 循环显示菜单，选择退出或者输入结束时返回
func (m *Menu) Run() error {
	for {
		m.println("Options:")
		m.println("1. Show all employees")
		m.println("2. Add new employee")
		m.println("3. Assign employee to shift")
		m.println("4. View employee schedule")
		m.println("5. Exit")

		input, ok := m.prompt("Enter option: ")
		if !ok {
			return m.in.Err()
		}

		selection, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil {
			selection = 0
		}

		var opErr error
		switch selection {
		case 1:
			opErr = m.showEmployees()
		case 2:
			opErr = m.addEmployee()
		case 3:
			opErr = m.assignShift()
		case 4:
			opErr = m.viewSchedule()
		case 5:
			return nil
		default:
			m.println("Invalid option")
		}

		if opErr != nil {
			if opErr == io.EOF {
				return m.in.Err()
			}
			slog.Error("菜单操作失败", "option", selection, "error", opErr)
			m.println(genericFailure)
		}
	}
}

func (m *Menu) showEmployees() error {
	employees, err := m.service.ListEmployees()
	if err != nil {
		return err
	}

	if len(employees) == 0 {
		m.println("No employees found.")
		return nil
	}

	m.println("Employee ID Name                 Phone")
	m.println("----------- -------------------- --------")
	for _, employee := range employees {
		m.println(fmt.Sprintf("%-11s%-21s%s", employee.EmployeeID, employee.Name, employee.Phone))
	}
	return nil
}

func (m *Menu) addEmployee() error {
	name, ok := m.prompt("Enter employee name: ")
	if !ok {
		return io.EOF
	}
	phone, ok := m.prompt("Enter phone number: ")
	if !ok {
		return io.EOF
	}

	if _, err := m.service.CreateEmployee(name, phone); err != nil {
		return err
	}
	m.println("Employee added...")
	return nil
}

func (m *Menu) assignShift() error {
	employeeID, ok := m.promptID("Enter employee ID: ")
	if !ok {
		return io.EOF
	}
	shiftID, ok := m.prompt("Enter shift ID: ")
	if !ok {
		return io.EOF
	}
	// 班次编号只去掉空白，大小写保持原样
	shiftID = strings.TrimSpace(shiftID)

	result, err := m.service.AssignEmployeeToShift(employeeID, shiftID)
	if err != nil {
		return err
	}
	m.println(result.Message)
	return nil
}

func (m *Menu) viewSchedule() error {
	employeeID, ok := m.promptID("Enter employee ID: ")
	if !ok {
		return io.EOF
	}

	schedule, err := m.service.GetEmployeeSchedule(employeeID)
	if err != nil {
		return err
	}

	if !schedule.Exists {
		m.println("Employee does not exist.")
		return nil
	}

	m.println("date,startTime,endTime")
	for _, row := range schedule.Rows {
		m.println(row.Date + "," + row.StartTime + "," + row.EndTime)
	}
	return nil
}

func (m *Menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		return "", false
	}
	return m.in.Text(), true
}

// promptID 读取员工编号并统一成大写
func (m *Menu) promptID(label string) (string, bool) {
	value, ok := m.prompt(label)
	return strings.ToUpper(strings.TrimSpace(value)), ok
}

func (m *Menu) println(line string) {
	fmt.Fprintln(m.out, line)
}
