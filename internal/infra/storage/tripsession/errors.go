package tripsession

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("tripsession.repository: session not found")

	// ErrEncode возвращается при ошибке сериализации сессии
	ErrEncode = errors.New("tripsession.repository: failed to encode session")

	// ErrDecode возвращается при ошибке десериализации сессии
	ErrDecode = errors.New("tripsession.repository: failed to decode session")

	// ErrStorage возвращается при ошибках Redis
	ErrStorage = errors.New("tripsession.repository: storage error")
)
