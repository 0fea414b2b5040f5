package propertyservice

import "errors"

var (
	// ErrPropertyNotFound возвращается, когда объект недвижимости не найден
	ErrPropertyNotFound = errors.New("propertyservice: property not found")

	// ErrInvalidResponse возвращается при некорректном ответе сервиса
	ErrInvalidResponse = errors.New("propertyservice: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("propertyservice: internal error")
)
