package scheduler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/domain"
)

func employeesWithIDs(ids ...string) []*domain.Employee {
	employees := make([]*domain.Employee, 0, len(ids))
	for _, id := range ids {
		employees = append(employees, &domain.Employee{EmployeeID: id})
	}
	return employees
}

func TestGenerateNextEmployeeID(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		want string
	}{
		{"empty collection", nil, "E001"},
		{"single", []string{"E001"}, "E002"},
		{"unordered", []string{"E007", "E002", "E005"}, "E008"},
		{"gaps are not filled", []string{"E001", "E010"}, "E011"},
		{"grows past three digits", []string{"E999"}, "E1000"},
		{"already wide", []string{"E1000", "E020"}, "E1001"},
		{"malformed ids ignored", []string{"E00X", "Eabc", "E", "", "E-5", "E004"}, "E005"},
		{"only malformed", []string{"bogus"}, "E001"},
		{"leading tag is not checked", []string{"X041"}, "E042"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateNextEmployeeID(employeesWithIDs(tt.ids...)))
		})
	}
}

func TestCreateEmployee(t *testing.T) {
	store := &memStore{employees: employeesWithIDs("E001", "E003")}
	notifier := &recordingNotifier{}
	s := New(store, &Parameters{}, WithNotifier(notifier))

	employee, err := s.CreateEmployee("Ali", "5551234")
	require.NoError(t, err)
	assert.Equal(t, &domain.Employee{EmployeeID: "E004", Name: "Ali", Phone: "5551234"}, employee)

	employees, err := s.ListEmployees()
	require.NoError(t, err)
	require.Len(t, employees, 3)
	assert.Equal(t, "E004", employees[2].EmployeeID)

	require.Len(t, notifier.messages, 1)
	assert.Equal(t, domain.NotificationEmployeeCreated, notifier.messages[0].Type)
}

func TestCreateEmployeeAcceptsDuplicatesAndEmptyValues(t *testing.T) {
	store := &memStore{}
	s := New(store, nil)

	first, err := s.CreateEmployee("", "")
	require.NoError(t, err)
	second, err := s.CreateEmployee("", "")
	require.NoError(t, err)

	assert.Equal(t, "E001", first.EmployeeID)
	assert.Equal(t, "E002", second.EmployeeID)
}

func TestCreateEmployeeStorageErrors(t *testing.T) {
	readErr := errors.New("employees.json unreadable")
	s := New(&memStore{EmployeesErr: readErr}, nil)
	_, err := s.CreateEmployee("Ali", "1")
	assert.ErrorIs(t, err, readErr)

	writeErr := errors.New("disk full")
	s = New(&memStore{AddErr: writeErr}, nil)
	_, err = s.CreateEmployee("Ali", "1")
	assert.ErrorIs(t, err, writeErr)
}

func TestNotifierFailureDoesNotFailCreate(t *testing.T) {
	store := &memStore{}
	s := New(store, nil, WithNotifier(&recordingNotifier{err: errors.New("broker down")}))

	_, err := s.CreateEmployee("Ali", "1")
	require.NoError(t, err)
	assert.Len(t, store.employees, 1)
}
