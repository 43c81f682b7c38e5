package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/domain"
)

func TestValidateShift(t *testing.T) {
	tests := []struct {
		name    string
		shift   domain.Shift
		wantErr bool
	}{
		{"valid", domain.Shift{ShiftID: "S001", Date: "2025-03-01", StartTime: "09:00", EndTime: "17:00"}, false},
		{"missing id", domain.Shift{Date: "2025-03-01", StartTime: "09:00", EndTime: "17:00"}, true},
		{"bad date", domain.Shift{ShiftID: "S001", Date: "03/01/2025", StartTime: "09:00", EndTime: "17:00"}, true},
		{"bad start", domain.Shift{ShiftID: "S001", Date: "2025-03-01", StartTime: "9am", EndTime: "17:00"}, true},
		{"bad end", domain.Shift{ShiftID: "S001", Date: "2025-03-01", StartTime: "09:00", EndTime: "24:30"}, true},
		{"end before start", domain.Shift{ShiftID: "S001", Date: "2025-03-01", StartTime: "17:00", EndTime: "09:00"}, true},
		{"zero length", domain.Shift{ShiftID: "S001", Date: "2025-03-01", StartTime: "09:00", EndTime: "09:00"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateShift(&tt.shift)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRomanizeChineseName(t *testing.T) {
	assert.Equal(t, "Wang Weiqiang", RomanizeChineseName("王伟强"))
	assert.Equal(t, "Li", RomanizeChineseName("李"))
	assert.Equal(t, "", RomanizeChineseName(""))
}

func TestGenerateRandomEmployeeName(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z][a-z]+ [A-Z][a-z]+$`)
	for i := 0; i < 20; i++ {
		assert.Regexp(t, pattern, GenerateRandomEmployeeName())
	}
}

func TestGenerateRandomPhone(t *testing.T) {
	for i := 0; i < 20; i++ {
		assert.Regexp(t, `^1[1-9][0-9]{9}$`, GenerateRandomPhone())
	}
}

func TestGenerateRandomShift(t *testing.T) {
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 20; i++ {
		shift := GenerateRandomShift(FormatShiftID(i+1), from, 7)
		assert.NoError(t, ValidateShift(shift))

		date, err := time.Parse(time.DateOnly, shift.Date)
		assert.NoError(t, err)
		assert.False(t, date.Before(from))
		assert.True(t, date.Before(from.AddDate(0, 0, 7)))
	}
	assert.Equal(t, "S042", FormatShiftID(42))
}
