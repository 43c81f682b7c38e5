package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeShiftDuration(t *testing.T) {
	tests := []struct {
		start string
		end   string
		want  float64
	}{
		{"09:00", "17:00", 8},
		{"09:30", "10:15", 0.75},
		{"00:00", "23:59", 23 + 59.0/60},
		{"9:00", "12:00", 3},
		{"12:00", "12:00", 0},
		// 结束早于开始时不做修正
		{"17:00", "09:00", -8},
	}

	for _, tt := range tests {
		t.Run(tt.start+"-"+tt.end, func(t *testing.T) {
			got, err := ComputeShiftDuration(tt.start, tt.end)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestComputeShiftDurationRejectsMalformedTime(t *testing.T) {
	for _, clock := range []string{"", "noon", "25:00", "09-00", "09:7"} {
		_, err := ComputeShiftDuration(clock, "10:00")
		assert.ErrorIs(t, err, ErrInvalidShiftTime, clock)
	}
}
