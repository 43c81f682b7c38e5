package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/config"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/domain"
)

// FileRepository 把四个容器分别保存为数据目录下的 JSON 文件。
// 每次调用都重新读取文件，不做任何缓存。
type FileRepository struct {
	cfg   *config.Config
	locks map[string]*sync.Mutex
}

func NewFileRepository(cfg *config.Config) *FileRepository {
	locks := make(map[string]*sync.Mutex)
	for _, name := range []string{
		cfg.Storage.EmployeesFile,
		cfg.Storage.ShiftsFile,
		cfg.Storage.AssignmentsFile,
		cfg.Storage.ConfigFile,
	} {
		locks[name] = &sync.Mutex{}
	}

	return &FileRepository{
		cfg:   cfg,
		locks: locks,
	}
}

func (r *FileRepository) GetAllEmployees() ([]*domain.Employee, error) {
	return readRecords[domain.Employee](r, r.cfg.Storage.EmployeesFile)
}

func (r *FileRepository) FindEmployee(employeeID string) (*domain.Employee, error) {
	employees, err := r.GetAllEmployees()
	if err != nil {
		return nil, err
	}

	for _, employee := range employees {
		if employee.EmployeeID == employeeID {
			return employee, nil
		}
	}
	return nil, nil
}

func (r *FileRepository) AddEmployee(employee *domain.Employee) error {
	return r.appendRecord(r.cfg.Storage.EmployeesFile, employee)
}

func (r *FileRepository) GetAllShifts() ([]*domain.Shift, error) {
	return readRecords[domain.Shift](r, r.cfg.Storage.ShiftsFile)
}

func (r *FileRepository) FindShift(shiftID string) (*domain.Shift, error) {
	shifts, err := r.GetAllShifts()
	if err != nil {
		return nil, err
	}

	for _, shift := range shifts {
		if shift.ShiftID == shiftID {
			return shift, nil
		}
	}
	return nil, nil
}

// AddShift 只给导入工具使用，排班逻辑本身不会修改班次
func (r *FileRepository) AddShift(shift *domain.Shift) error {
	return r.appendRecord(r.cfg.Storage.ShiftsFile, shift)
}

func (r *FileRepository) GetAllAssignments() ([]*domain.Assignment, error) {
	return readRecords[domain.Assignment](r, r.cfg.Storage.AssignmentsFile)
}

func (r *FileRepository) GetAssignmentsForEmployee(employeeID string) ([]*domain.Assignment, error) {
	assignments, err := r.GetAllAssignments()
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Assignment, 0)
	for _, assignment := range assignments {
		if assignment.EmployeeID == employeeID {
			result = append(result, assignment)
		}
	}
	return result, nil
}

func (r *FileRepository) AddAssignment(assignment *domain.Assignment) error {
	return r.appendRecord(r.cfg.Storage.AssignmentsFile, assignment)
}

func (r *FileRepository) GetConfig() (*domain.Settings, error) {
	var settings *domain.Settings
	if err := r.readContainer(r.cfg.Storage.ConfigFile, &settings); err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, storageError(r.cfg.Storage.ConfigFile, "parse", errors.New("config is null"))
	}
	return settings, nil
}

// EnsureContainers 创建缺失的容器文件，已存在的文件不会被改动
func (r *FileRepository) EnsureContainers(settings *domain.Settings) error {
	if err := os.MkdirAll(r.cfg.Storage.DataDir, 0750); err != nil {
		return storageError(r.cfg.Storage.DataDir, "create", err)
	}

	initial := map[string]any{
		r.cfg.Storage.EmployeesFile:   []any{},
		r.cfg.Storage.ShiftsFile:      []any{},
		r.cfg.Storage.AssignmentsFile: []any{},
		r.cfg.Storage.ConfigFile:      settings,
	}
	for name, value := range initial {
		if _, err := os.Stat(r.path(name)); err == nil {
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return storageError(name, "stat", err)
		}

		if err := r.writeContainer(name, value); err != nil {
			return err
		}
	}
	return nil
}

func (r *FileRepository) path(name string) string {
	return filepath.Join(r.cfg.Storage.DataDir, name)
}

func (r *FileRepository) readContainer(name string, dst any) error {
	data, err := os.ReadFile(r.path(name))
	if err != nil {
		return storageError(name, "read", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return storageError(name, "parse", err)
	}
	return nil
}

// appendRecord 以原始 JSON 的形式读出已有记录再追加，
// 这样不相关的记录（包括未知字段）在写回时保持原样和原有顺序
func (r *FileRepository) appendRecord(name string, record any) error {
	mu := r.locks[name]
	mu.Lock()
	defer mu.Unlock()

	records := make([]json.RawMessage, 0)
	if err := r.readContainer(name, &records); err != nil {
		return err
	}

	raw, err := json.Marshal(record)
	if err != nil {
		return storageError(name, "encode", err)
	}
	records = append(records, raw)

	return r.writeContainer(name, records)
}

// writeContainer 先写临时文件再 rename，读方不会看到写了一半的文件
func (r *FileRepository) writeContainer(name string, value any) error {
	data, err := json.MarshalIndent(value, "", "    ")
	if err != nil {
		return storageError(name, "encode", err)
	}

	target := r.path(name)
	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return storageError(name, "write", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // rename 成功后这里什么也不会删

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return storageError(name, "write", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return storageError(name, "write", err)
	}
	if err := tmp.Close(); err != nil {
		return storageError(name, "write", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return storageError(name, "write", fmt.Errorf("rename: %w", err))
	}
	return nil
}

// readRecords 读取一个数组容器，数组中的 null 元素视为容器损坏
func readRecords[T any](r *FileRepository, name string) ([]*T, error) {
	records := make([]*T, 0)
	if err := r.readContainer(name, &records); err != nil {
		return nil, err
	}
	for i, record := range records {
		if record == nil {
			return nil, storageError(name, "parse", fmt.Errorf("null record at index %d", i))
		}
	}
	if records == nil {
		return make([]*T, 0), nil
	}
	return records, nil
}
