package notification

import "errors"

var (
	// ErrRecordNotFound возвращается, когда запись об уведомлении не найдена
	ErrRecordNotFound = errors.New("notification.repository: record not found")

	// ErrTokenNotFound возвращается, когда токен бронирования не найден
	ErrTokenNotFound = errors.New("notification.repository: token not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("notification.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("notification.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("notification.repository: failed to scan row")
)
