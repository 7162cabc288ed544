package apiclient

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics счетчики обращений к удаленному API
type Metrics interface {
	IntegrationCall(endpoint, outcome string)
	TokenRefresh(result string)
}
