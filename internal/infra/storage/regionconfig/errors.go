package regionconfig

import "errors"

var (
	// ErrConfigNotFound возвращается, когда конфигурация региона не найдена
	ErrConfigNotFound = errors.New("regionconfig.repository: config not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("regionconfig.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("regionconfig.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("regionconfig.repository: failed to scan row")
)
