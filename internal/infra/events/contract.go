package events

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Transport отправка сообщения в топик брокера
// *nsq.Producer удовлетворяет этому интерфейсу
type Transport interface {
	Publish(topic string, body []byte) error
	Stop()
}
