package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel определяет уровни логирования
type LogLevel int

const (
	TRACE LogLevel = iota
	DEBUG
	INFO
	WARN
	ERROR
)

// String возвращает строковое представление уровня логирования
func (l LogLevel) String() string {
	switch l {
	case TRACE:
		return "TRACE"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel разбирает уровень из строки конфигурации
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return TRACE, nil
	case "DEBUG":
		return DEBUG, nil
	case "", "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	}
	return INFO, fmt.Errorf("неизвестный уровень логирования %q", s)
}

// Logger - логгер компонента поверх zap
type Logger struct {
	component string
	level     LogLevel
	atom      zap.AtomicLevel
	sugar     *zap.SugaredLogger
}

// NewLogger создаёт консольный логгер компонента
func NewLogger(component string, level LogLevel) (*Logger, error) {
	atom := zap.NewAtomicLevelAt(toZapLevel(level))

	config := zap.Config{
		Level:            atom,
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	base, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("ошибка создания zap логгера: %w", err)
	}

	return &Logger{
		component: component,
		level:     level,
		atom:      atom,
		sugar:     base.Named(component).Sugar(),
	}, nil
}

// NewNop создаёт логгер, который ничего не пишет
func NewNop() *Logger {
	return &Logger{
		component: "nop",
		level:     ERROR,
		atom:      zap.NewAtomicLevelAt(zapcore.FatalLevel),
		sugar:     zap.NewNop().Sugar(),
	}
}

// Component возвращает имя компонента
func (l *Logger) Component() string { return l.component }

// Level возвращает текущий уровень
func (l *Logger) Level() LogLevel { return l.level }

// SetLevel меняет уровень логирования на лету
func (l *Logger) SetLevel(level LogLevel) {
	l.level = level
	l.atom.SetLevel(toZapLevel(level))
}

// With возвращает дочерний логгер с дополнительным полем
func (l *Logger) With(key string, value interface{}) *Logger {
	child := *l
	child.sugar = l.sugar.With(key, value)
	return &child
}

// Trace логирует сообщение уровня TRACE (в zap это debug с отметкой trace)
func (l *Logger) Trace(format string, args ...interface{}) {
	if l.level > TRACE {
		return
	}
	l.sugar.Debugw(fmt.Sprintf(format, args...), "trace", true)
}

// Debug логирует сообщение уровня DEBUG
func (l *Logger) Debug(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

// Info логирует сообщение уровня INFO
func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Warn логирует сообщение уровня WARN
func (l *Logger) Warn(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// Error логирует сообщение уровня ERROR
func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// Close сбрасывает буферы. Ошибка Sync для stdout/терминала игнорируется.
func (l *Logger) Close() error {
	_ = l.sugar.Sync()
	return nil
}

func toZapLevel(level LogLevel) zapcore.Level {
	switch level {
	case TRACE, DEBUG:
		return zapcore.DebugLevel
	case INFO:
		return zapcore.InfoLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
