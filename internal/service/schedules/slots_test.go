package schedules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PMS-InspectionService/internal/domain"
	"github.com/m04kA/PMS-InspectionService/pkg/types"
)

func TestGenerateSlots(t *testing.T) {
	tests := []struct {
		name     string
		start    types.TimeString
		end      types.TimeString
		duration int
		want     []domain.SlotWindow
	}{
		{
			name:     "remainder dropped",
			start:    "09:00",
			end:      "17:00",
			duration: 150,
			want: []domain.SlotWindow{
				{StartTime: "09:00", EndTime: "11:30"},
				{StartTime: "11:30", EndTime: "14:00"},
				{StartTime: "14:00", EndTime: "16:30"},
			},
		},
		{
			name:     "exact fit",
			start:    "09:00",
			end:      "10:00",
			duration: 15,
			want: []domain.SlotWindow{
				{StartTime: "09:00", EndTime: "09:15"},
				{StartTime: "09:15", EndTime: "09:30"},
				{StartTime: "09:30", EndTime: "09:45"},
				{StartTime: "09:45", EndTime: "10:00"},
			},
		},
		{
			name:     "single slot",
			start:    "09:00",
			end:      "10:00",
			duration: 60,
			want: []domain.SlotWindow{
				{StartTime: "09:00", EndTime: "10:00"},
			},
		},
		{
			name:     "duration longer than day",
			start:    "09:00",
			end:      "10:00",
			duration: 90,
			want:     []domain.SlotWindow{},
		},
		{
			name:     "start equals end",
			start:    "09:00",
			end:      "09:00",
			duration: 30,
			want:     []domain.SlotWindow{},
		},
		{
			name:     "start after end",
			start:    "17:00",
			end:      "09:00",
			duration: 30,
			want:     []domain.SlotWindow{},
		},
		{
			name:     "zero duration",
			start:    "09:00",
			end:      "17:00",
			duration: 0,
			want:     []domain.SlotWindow{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := generateSlots(tt.start, tt.end, tt.duration)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Повторный вызов с теми же параметрами обязан дать идентичный результат
func TestGenerateSlots_Deterministic(t *testing.T) {
	first := generateSlots("09:00", "18:00", 45)
	second := generateSlots("09:00", "18:00", 45)

	require.Equal(t, first, second)
	require.NotEmpty(t, first)

	// Слоты стыкуются без зазоров и не пересекаются
	for i := 1; i < len(first); i++ {
		assert.Equal(t, first[i-1].EndTime, first[i].StartTime)
	}
}
