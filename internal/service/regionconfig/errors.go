package regionconfig

import "errors"

var (
	// ErrConfigNotFound возвращается, когда регион ещё не настроен
	ErrConfigNotFound = errors.New("region config not found")

	// ErrInvalidRegion возвращается при неизвестном регионе
	ErrInvalidRegion = errors.New("invalid region")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
