package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/config"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/domain"
)

// Store 是排班逻辑访问四个持久化容器的接口。
// Find* 在记录不存在时返回 (nil, nil)，只有容器本身出问题时才返回 error。
type Store interface {
	GetAllEmployees() ([]*domain.Employee, error)
	FindEmployee(employeeID string) (*domain.Employee, error)
	AddEmployee(employee *domain.Employee) error

	GetAllShifts() ([]*domain.Shift, error)
	FindShift(shiftID string) (*domain.Shift, error)

	GetAllAssignments() ([]*domain.Assignment, error)
	GetAssignmentsForEmployee(employeeID string) ([]*domain.Assignment, error)
	AddAssignment(assignment *domain.Assignment) error

	GetConfig() (*domain.Settings, error)
}

// ErrDuplicateAssignment 由自身保证 (employeeId, shiftId) 唯一的存储返回
var ErrDuplicateAssignment = errors.New("assignment already exists")

type StorageError struct {
	Container string
	Op        string
	Err       error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Container, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageError(container, op string, err error) error {
	return &StorageError{Container: container, Op: op, Err: err}
}

// Open 根据配置选择存储后端，db 只在 postgres 驱动下使用
func Open(cfg *config.Config, db *sql.DB) (Store, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverFile:
		return NewFileRepository(cfg), nil
	case config.StorageDriverPostgres:
		if db == nil {
			return nil, errors.New("postgres 存储需要数据库连接池")
		}
		return NewPostgresRepository(cfg, db), nil
	default:
		return nil, fmt.Errorf("不支持的存储驱动: %q", cfg.Storage.Driver)
	}
}
