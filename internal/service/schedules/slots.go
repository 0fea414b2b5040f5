package schedules

import (
	"github.com/m04kA/PMS-InspectionService/internal/domain"
	"github.com/m04kA/PMS-InspectionService/pkg/types"
)

// generateSlots генерирует окна слотов от начала до конца рабочего дня
// с фиксированным шагом durationMinutes.
// Неполный остаток в конце дня отбрасывается: слот, чей конец выходит
// за endTime, не создаётся.
// Для некорректного интервала (start >= end) возвращается пустой список.
func generateSlots(start, end types.TimeString, durationMinutes int) []domain.SlotWindow {
	windows := make([]domain.SlotWindow, 0)

	if durationMinutes <= 0 || !start.IsBefore(end) {
		return windows
	}

	cursor := start

	for cursor.IsBefore(end) {
		slotEnd, err := cursor.AddMinutes(durationMinutes)
		if err != nil {
			// Вышли за границы суток
			break
		}
		if slotEnd.IsAfter(end) {
			break
		}

		windows = append(windows, domain.SlotWindow{
			StartTime: cursor,
			EndTime:   slotEnd,
		})

		cursor = slotEnd
	}

	return windows
}
