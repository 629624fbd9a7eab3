package hospitalapi

import "time"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс для учета вызовов бэкенда
type Metrics interface {
	ObserveRemoteCall(operation, outcome string, duration time.Duration)
}
