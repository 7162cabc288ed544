package confirmation

import "errors"

var (
	// ErrTokenNotFound возвращается, когда токен не выдан, уже использован или истек
	ErrTokenNotFound = errors.New("confirmation.store: token not found")

	// ErrStorage возвращается при ошибках Redis
	ErrStorage = errors.New("confirmation.store: storage error")
)
