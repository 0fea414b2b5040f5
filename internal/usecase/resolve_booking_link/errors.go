package resolve_booking_link

import "errors"

var (
	// ErrLinkNotFound возвращается для несуществующего или некорректного
	// токена. Наружу причина не раскрывается: ответ одинаков для
	// неизвестного токена и для мусорной строки.
	ErrLinkNotFound = errors.New("resolve_booking_link: link not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("resolve_booking_link: internal error")
)
