// Package logger provides logging implementations.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"

	"github.com/user/pinframe/pkg/ports"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGray   = "\033[90m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
)

// ConsoleLogger logs messages to the console with color support.
// Debug and info go to out, warnings and errors to errOut.
type ConsoleLogger struct {
	level     ports.LogLevel
	component string
	color     bool

	mu     *sync.Mutex
	out    io.Writer
	errOut io.Writer
}

// NewConsole creates a console logger writing to stdout and stderr.
// Color output is enabled when stderr is a terminal.
func NewConsole(level ports.LogLevel) *ConsoleLogger {
	fd := os.Stderr.Fd()
	l := NewConsoleWriter(level, os.Stdout, os.Stderr)
	l.color = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return l
}

// NewConsoleWriter creates an uncolored console logger on the given writers.
func NewConsoleWriter(level ports.LogLevel, out, errOut io.Writer) *ConsoleLogger {
	return &ConsoleLogger{
		level:  level,
		mu:     &sync.Mutex{},
		out:    out,
		errOut: errOut,
	}
}

// Debug logs a debug message.
func (l *ConsoleLogger) Debug(msg string, args ...interface{}) {
	l.log(ports.LevelDebug, msg, args...)
}

// Info logs an informational message.
func (l *ConsoleLogger) Info(msg string, args ...interface{}) {
	l.log(ports.LevelInfo, msg, args...)
}

// Warn logs a warning message.
func (l *ConsoleLogger) Warn(msg string, args ...interface{}) {
	l.log(ports.LevelWarn, msg, args...)
}

// Error logs an error message.
func (l *ConsoleLogger) Error(msg string, args ...interface{}) {
	l.log(ports.LevelError, msg, args...)
}

// WithComponent returns a new logger with the specified component name.
// The returned logger shares writers with its parent.
func (l *ConsoleLogger) WithComponent(component string) ports.Logger {
	child := *l
	child.component = component
	return &child
}

func (l *ConsoleLogger) log(level ports.LogLevel, msg string, args ...interface{}) {
	if level < l.level {
		return
	}

	line := l10n.F(msg, args...)
	if l.component != "" {
		if l.color {
			line = fmt.Sprintf("%s[%s]%s %s", colorCyan, l.component, colorReset, line)
		} else {
			line = fmt.Sprintf("[%s] %s", l.component, line)
		}
	}

	if l.color {
		switch level {
		case ports.LevelDebug:
			line = colorGray + line + colorReset
		case ports.LevelWarn:
			line = colorYellow + line + colorReset
		case ports.LevelError:
			line = colorRed + line + colorReset
		}
	}

	w := l.out
	if level >= ports.LevelWarn {
		w = l.errOut
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(w, line)
}

var _ ports.Logger = (*ConsoleLogger)(nil)
