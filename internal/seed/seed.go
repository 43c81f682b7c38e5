package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/domain"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/utils"
)

// ShiftStore 是导入班次需要的存储操作，两种存储后端都实现了它
type ShiftStore interface {
	GetAllShifts() ([]*domain.Shift, error)
	AddShift(shift *domain.Shift) error
}

type EmployeeCreator interface {
	CreateEmployee(name, phone string) (*domain.Employee, error)
}

var shiftHeaders = []string{"shiftId", "date", "startTime", "endTime"}

// ImportShifts 从 CSV 导入班次，表头必须包含 shiftId,date,startTime,endTime。
// 格式不合法或编号已存在的行会被跳过，存储错误会直接返回。
func ImportShifts(store ShiftStore, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	// 读取表头
	headers, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("读取表头失败: %w", err)
	}

	columns := make(map[string]int)
	for i, header := range headers {
		columns[strings.TrimSpace(header)] = i
	}
	for _, header := range shiftHeaders {
		if _, ok := columns[header]; !ok {
			return 0, fmt.Errorf("没有找到列 %q", header)
		}
	}

	existing, err := store.GetAllShifts()
	if err != nil {
		return 0, err
	}
	seen := make(map[string]bool, len(existing))
	for _, shift := range existing {
		seen[shift.ShiftID] = true
	}

	imported := 0
	for {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return imported, fmt.Errorf("读取文件失败: %w", err)
		}

		shift := &domain.Shift{
			ShiftID:   strings.TrimSpace(row[columns["shiftId"]]),
			Date:      strings.TrimSpace(row[columns["date"]]),
			StartTime: strings.TrimSpace(row[columns["startTime"]]),
			EndTime:   strings.TrimSpace(row[columns["endTime"]]),
		}

		if err := utils.ValidateShift(shift); err != nil {
			slog.Error("跳过不合法的班次", "row", row, "error", err)
			continue
		}
		if seen[shift.ShiftID] {
			slog.Warn("班次已存在，跳过", "shiftId", shift.ShiftID)
			continue
		}

		if err := store.AddShift(shift); err != nil {
			return imported, err
		}
		seen[shift.ShiftID] = true
		imported++
	}

	return imported, nil
}

// SeedRandomEmployees 插入 n 个随机员工，返回成功的数量
func SeedRandomEmployees(creator EmployeeCreator, n int) int {
	cnt := 0
	for i := 0; i < n; i++ {
		if _, err := creator.CreateEmployee(utils.GenerateRandomEmployeeName(), utils.GenerateRandomPhone()); err != nil {
			slog.Error("无法插入员工", "error", err)
			continue
		}
		cnt++
	}
	return cnt
}

// SeedRandomShifts 从现有最大编号之后开始生成 n 个随机班次，日期落在 from 之后的 days 天内
func SeedRandomShifts(store ShiftStore, n int, from time.Time, days int) (int, error) {
	existing, err := store.GetAllShifts()
	if err != nil {
		return 0, err
	}

	next := 0
	for _, shift := range existing {
		if number, err := strconv.Atoi(strings.TrimPrefix(shift.ShiftID, "S")); err == nil && number > next {
			next = number
		}
	}

	cnt := 0
	for i := 0; i < n; i++ {
		next++
		shift := utils.GenerateRandomShift(utils.FormatShiftID(next), from, days)
		if err := store.AddShift(shift); err != nil {
			return cnt, err
		}
		cnt++
	}
	return cnt, nil
}
