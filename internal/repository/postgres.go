package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/config"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/domain"
)

//go:embed schema.sql
var schema string

const (
	tableEmployees   = "employees"
	tableShifts      = "shifts"
	tableAssignments = "assignments"
	tableSettings    = "settings"
)

type PostgresRepository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewPostgresRepository(cfg *config.Config, dbpool *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}

func (r *PostgresRepository) queryContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
}

func (r *PostgresRepository) Migrate() error {
	ctx, cancel := r.queryContext()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, schema); err != nil {
		return storageError("schema", "migrate", err)
	}
	return nil
}

func (r *PostgresRepository) GetAllEmployees() ([]*domain.Employee, error) {
	query := `
		SELECT employee_id, name, phone FROM employees ORDER BY seq
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, storageError(tableEmployees, "read", err)
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		employee := &domain.Employee{}
		if err := rows.Scan(&employee.EmployeeID, &employee.Name, &employee.Phone); err != nil {
			return nil, storageError(tableEmployees, "parse", err)
		}
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError(tableEmployees, "read", err)
	}

	return employees, nil
}

func (r *PostgresRepository) FindEmployee(employeeID string) (*domain.Employee, error) {
	query := `
		SELECT name, phone FROM employees WHERE employee_id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	employee := &domain.Employee{
		EmployeeID: employeeID,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, employeeID).Scan(&employee.Name, &employee.Phone); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storageError(tableEmployees, "read", err)
	}

	return employee, nil
}

func (r *PostgresRepository) AddEmployee(employee *domain.Employee) error {
	query := `
		INSERT INTO employees (employee_id, name, phone) VALUES ($1, $2, $3)
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, employee.EmployeeID, employee.Name, employee.Phone); err != nil {
		return storageError(tableEmployees, "write", err)
	}

	return nil
}

func (r *PostgresRepository) GetAllShifts() ([]*domain.Shift, error) {
	query := `
		SELECT shift_id, date, start_time, end_time FROM shifts ORDER BY seq
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, storageError(tableShifts, "read", err)
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		shift := &domain.Shift{}
		dst := []any{&shift.ShiftID, &shift.Date, &shift.StartTime, &shift.EndTime}
		if err := rows.Scan(dst...); err != nil {
			return nil, storageError(tableShifts, "parse", err)
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError(tableShifts, "read", err)
	}

	return shifts, nil
}

func (r *PostgresRepository) FindShift(shiftID string) (*domain.Shift, error) {
	query := `
		SELECT date, start_time, end_time FROM shifts WHERE shift_id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	shift := &domain.Shift{
		ShiftID: shiftID,
	}

	dst := []any{&shift.Date, &shift.StartTime, &shift.EndTime}
	if err := r.dbpool.QueryRowContext(ctx, query, shiftID).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storageError(tableShifts, "read", err)
	}

	return shift, nil
}

func (r *PostgresRepository) AddShift(shift *domain.Shift) error {
	query := `
		INSERT INTO shifts (shift_id, date, start_time, end_time) VALUES ($1, $2, $3, $4)
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{shift.ShiftID, shift.Date, shift.StartTime, shift.EndTime}
	if _, err := r.dbpool.ExecContext(ctx, query, args...); err != nil {
		return storageError(tableShifts, "write", err)
	}

	return nil
}

func (r *PostgresRepository) GetAllAssignments() ([]*domain.Assignment, error) {
	query := `
		SELECT employee_id, shift_id FROM assignments ORDER BY seq
	`
	return r.queryAssignments(query)
}

func (r *PostgresRepository) GetAssignmentsForEmployee(employeeID string) ([]*domain.Assignment, error) {
	query := `
		SELECT employee_id, shift_id FROM assignments WHERE employee_id = $1 ORDER BY seq
	`
	return r.queryAssignments(query, employeeID)
}

func (r *PostgresRepository) queryAssignments(query string, args ...any) ([]*domain.Assignment, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError(tableAssignments, "read", err)
	}
	defer rows.Close()

	assignments := make([]*domain.Assignment, 0)
	for rows.Next() {
		assignment := &domain.Assignment{}
		if err := rows.Scan(&assignment.EmployeeID, &assignment.ShiftID); err != nil {
			return nil, storageError(tableAssignments, "parse", err)
		}
		assignments = append(assignments, assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError(tableAssignments, "read", err)
	}

	return assignments, nil
}

func (r *PostgresRepository) AddAssignment(assignment *domain.Assignment) error {
	query := `
		INSERT INTO assignments (employee_id, shift_id) VALUES ($1, $2)
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, assignment.EmployeeID, assignment.ShiftID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "assignments_employee_id_shift_id_key" {
			return ErrDuplicateAssignment
		}
		return storageError(tableAssignments, "write", err)
	}

	return nil
}

func (r *PostgresRepository) GetConfig() (*domain.Settings, error) {
	query := `
		SELECT max_daily_hours FROM settings WHERE id = 1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	var maxDailyHours sql.NullFloat64
	if err := r.dbpool.QueryRowContext(ctx, query).Scan(&maxDailyHours); err != nil {
		// 没有配置行时和文件存储一样视为存储错误，不做默认值回退
		return nil, storageError(tableSettings, "read", err)
	}

	settings := &domain.Settings{}
	if maxDailyHours.Valid {
		settings.MaxDailyHours = &maxDailyHours.Float64
	}

	return settings, nil
}

// EnsureSettings 在没有配置行时插入一行，已有配置不会被覆盖
func (r *PostgresRepository) EnsureSettings(settings *domain.Settings) error {
	query := `
		INSERT INTO settings (id, max_daily_hours) VALUES (1, $1)
		ON CONFLICT (id) DO NOTHING
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	var maxDailyHours sql.NullFloat64
	if settings != nil && settings.MaxDailyHours != nil {
		maxDailyHours = sql.NullFloat64{Float64: *settings.MaxDailyHours, Valid: true}
	}

	if _, err := r.dbpool.ExecContext(ctx, query, maxDailyHours); err != nil {
		return storageError(tableSettings, "write", err)
	}

	return nil
}
