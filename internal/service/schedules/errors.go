package schedules

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание не найдено
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrInvalidRegion возвращается при неизвестном регионе
	ErrInvalidRegion = errors.New("invalid region")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrHasConfirmedBookings возвращается при попытке удалить расписание
	// с подтверждёнными бронированиями
	ErrHasConfirmedBookings = errors.New("schedule has confirmed bookings")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
