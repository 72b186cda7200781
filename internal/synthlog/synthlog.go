// Package synthlog provides the verbosity-gated progress sink of §6
// ("logger: sink for progress messages (verbosity 0-2)"), wrapping the
// standard library log.Logger the way the teacher does (src/examples/main.go,
// examples.go use plain "log", never a third-party logging framework).
package synthlog

import (
	"io"
	"log"
	"os"
)

// Logger gates messages by a configured verbosity level, matching
// compiler.py's logprint(msg, verbosity=N) calls.
type Logger struct {
	verbosity int
	out       *log.Logger
}

// New builds a Logger writing to w at the given verbosity (0-2). A nil w
// defaults to os.Stdout.
func New(verbosity int, w io.Writer) *Logger {
	if w == nil {
		w = os.Stdout
	}
	return &Logger{verbosity: verbosity, out: log.New(w, "", log.LstdFlags)}
}

// Logprint emits msg if level <= the configured verbosity. The level has no
// default here; Info is the level-1 shorthand.
func (l *Logger) Logprint(level int, format string, args ...interface{}) {
	if l == nil || l.out == nil {
		return
	}
	if level > l.verbosity {
		return
	}
	l.out.Printf(format, args...)
}

// Info logs at verbosity 1.
func (l *Logger) Info(format string, args ...interface{}) { l.Logprint(1, format, args...) }

// Debug logs at verbosity 2.
func (l *Logger) Debug(format string, args ...interface{}) { l.Logprint(2, format, args...) }

// Warn always logs, regardless of verbosity (matches recoverable-error log
// lines in §7, which must always surface).
func (l *Logger) Warn(format string, args ...interface{}) { l.Logprint(0, format, args...) }
