package apiclient

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента (сборка запроса, сеть)
	ErrInternal = errors.New("apiclient: internal error")

	// ErrInvalidResponse возвращается, если ответ не удалось разобрать
	ErrInvalidResponse = errors.New("apiclient: invalid response")
)
