package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation некорректные или отсутствующие поля запроса
	ErrValidation = errors.New("validation error")

	// ErrPrecondition действие недоступно в текущем состоянии
	ErrPrecondition = errors.New("precondition failed")

	// ErrServiceError удаленный сервис ответил ошибкой (не 2xx или success=false)
	ErrServiceError = errors.New("remote service error")

	// ErrUnauthorized 401 после попытки обновления токена, сессия должна быть завершена
	ErrUnauthorized = errors.New("unauthorized")
)

// ServiceError ошибка удаленного API с полезной нагрузкой {message, stack, success}
type ServiceError struct {
	StatusCode int
	Message    string
	Stack      string
	Success    bool
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("remote service error: status=%d, message=%s", e.StatusCode, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return ErrServiceError
}

// IsRemoteError true для ошибок, которые usecase пробрасывает наверх без обертки
func IsRemoteError(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrServiceError)
}
