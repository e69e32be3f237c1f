// Package logger provides the named, colour-prefixed loggers used across the service.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/beka-birhanu/vinom-trapmaze/config"
	"github.com/beka-birhanu/vinom-trapmaze/service/i"
)

var _ i.Logger = &Logger{}

var ErrNilWriter = errors.New("logger needs a writer")

// Logger writes leveled lines like "[APP] 2025/01/02 15:04:05 [INFO] message".
type Logger struct {
	out *log.Logger
}

// New creates a logger whose prefix is printed in color.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	if w == nil {
		return nil, ErrNilWriter
	}

	p := fmt.Sprintf("%s[%s]%s ", color, prefix, config.ColorReset)
	return &Logger{out: log.New(w, p, log.LstdFlags)}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.out.Printf("%s[INFO]%s %s", config.LogInfoColor, config.LogColorReset, msg)
}

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string) {
	l.out.Printf("%s[WARNING]%s %s", config.LogWarningColor, config.LogColorReset, msg)
}

// Error logs a failure.
func (l *Logger) Error(msg string) {
	l.out.Printf("%s[ERROR]%s %s", config.LogErrorColor, config.LogColorReset, msg)
}
