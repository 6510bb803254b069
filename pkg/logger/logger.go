package logger

import (
	"go.uber.org/zap"
)

// Logger описывает минимальный интерфейс структурированного логгера,
// достаточный для использования в handler'ах и middleware.
type Logger interface {
	Info(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

// New создаёт zap-логгер, настроенный под окружение: в production — JSON и
// уровень Info, иначе — консольный вывод разработки.
func New(appEnv string) Logger {
	var (
		zl  *zap.Logger
		err error
	)
	if appEnv == "production" {
		zl, err = zap.NewProduction()
	} else {
		zl, err = zap.NewDevelopment()
	}
	if err != nil {
		// Конструкторы zap с дефолтными конфигами ошибок не возвращают;
		// на всякий случай деградируем к no-op логгеру.
		zl = zap.NewNop()
	}
	return &zapLogger{sugar: zl.Sugar()}
}

// Default возвращает логгер окружения разработки.
func Default() Logger {
	return New("development")
}

func (l *zapLogger) Info(msg string, fields map[string]any) {
	l.sugar.Infow(msg, flatten(fields)...)
}

func (l *zapLogger) Error(msg string, fields map[string]any) {
	l.sugar.Errorw(msg, flatten(fields)...)
}

// flatten переводит map в чередующиеся ключи/значения для SugaredLogger.
func flatten(fields map[string]any) []any {
	kv := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		kv = append(kv, k, v)
	}
	return kv
}
