package create_booking

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrSlotNotInSchedule возвращается, когда слот не принадлежит ожидаемому расписанию
	ErrSlotNotInSchedule = errors.New("create_booking: slot does not belong to schedule")

	// ErrScheduleClosed возвращается при попытке бронирования в закрытом расписании
	ErrScheduleClosed = errors.New("create_booking: schedule is closed")

	// ErrSlotFull возвращается, когда в слоте не осталось мест
	ErrSlotFull = errors.New("create_booking: slot is full")

	// ErrLinkNotFound возвращается для несуществующего или некорректного
	// токена публичной ссылки. Причина наружу не раскрывается.
	ErrLinkNotFound = errors.New("create_booking: link not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
