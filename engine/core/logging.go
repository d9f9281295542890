package core

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// LoggerOptions configures a Logger sink.
type LoggerOptions struct {
	Level        string
	Prefix       string
	ReportCaller bool
	Timestamps   bool
}

// Logger is the diagnostics sink handed to every pipeline component.
// A nil *Logger discards everything. Logging never fails the caller.
type Logger struct {
	l *log.Logger

	warnings atomic.Int64
	errors   atomic.Int64
}

func NewLogger(w io.Writer, opts LoggerOptions) *Logger {
	if w == nil {
		w = io.Discard
	}
	l := log.NewWithOptions(w, log.Options{
		ReportCaller:    opts.ReportCaller,
		ReportTimestamp: opts.Timestamps,
		TimeFormat:      time.RFC3339,
		Prefix:          opts.Prefix,
		CallerOffset:    1,
	})

	level := log.DebugLevel
	if opts.Level != "" {
		if lvl, err := log.ParseLevel(opts.Level); err == nil {
			level = lvl
		} else {
			l.Warnf("unknown log level %q; using debug", opts.Level)
		}
	}
	l.SetLevel(level)
	return &Logger{l: l}
}

// Discard returns a sink that drops all output but still counts diagnostics.
func Discard() *Logger {
	return NewLogger(io.Discard, LoggerOptions{Level: "error"})
}

func (lg *Logger) Debug(msg string, args ...interface{}) {
	if lg == nil {
		return
	}
	lg.l.Debugf(msg, args...)
}

func (lg *Logger) Info(msg string, args ...interface{}) {
	if lg == nil {
		return
	}
	lg.l.Infof(msg, args...)
}

func (lg *Logger) Warn(msg string, args ...interface{}) {
	if lg == nil {
		return
	}
	lg.warnings.Add(1)
	lg.l.Warnf(msg, args...)
}

func (lg *Logger) Error(msg string, args ...interface{}) {
	if lg == nil {
		return
	}
	lg.errors.Add(1)
	lg.l.Errorf(msg, args...)
}

// Warnings returns how many warnings went through the sink.
func (lg *Logger) Warnings() int {
	if lg == nil {
		return 0
	}
	return int(lg.warnings.Load())
}

// Errors returns how many errors went through the sink.
func (lg *Logger) Errors() int {
	if lg == nil {
		return 0
	}
	return int(lg.errors.Load())
}

// SetLevel changes the minimum level. Unknown names are ignored.
func (lg *Logger) SetLevel(level string) {
	if lg == nil {
		return
	}
	if lvl, err := log.ParseLevel(level); err == nil {
		lg.l.SetLevel(lvl)
	}
}

var once sync.Once

var singleton *Logger

// DefaultLogger returns the process-wide stderr sink.
func DefaultLogger() *Logger {
	once.Do(
		func() {
			singleton = NewLogger(os.Stderr, LoggerOptions{
				Level:        "debug",
				Prefix:       "rlres 📦 ",
				ReportCaller: true,
				Timestamps:   true,
			})
		})
	return singleton
}

func LogWarn(msg string, args ...interface{}) {
	DefaultLogger().Warn(msg, args...)
}

func LogError(msg string, args ...interface{}) {
	DefaultLogger().Error(msg, args...)
}
