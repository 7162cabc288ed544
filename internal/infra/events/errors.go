package events

import "errors"

var (
	// ErrConnect возвращается, если не удалось подключиться к nsqd
	ErrConnect = errors.New("events: failed to connect to broker")

	// ErrEncode возвращается при ошибке сериализации события
	ErrEncode = errors.New("events: failed to encode event")

	// ErrPublish возвращается при ошибке отправки события
	ErrPublish = errors.New("events: failed to publish event")
)
