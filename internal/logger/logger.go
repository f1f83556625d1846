// Package logger is a small leveled logger that writes to a standard
// log.Logger and, when a token is configured, mirrors entries to Rollbar.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/rollbar/rollbar-go"
	rollbarerrors "github.com/rollbar/rollbar-go/errors"
)

// Logger is what services depend on
type Logger interface {
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// Options configures the Rollbar side of the logger
type Options struct {
	RollbarToken string
	Environment  string
	CodeVersion  string
	ServerHost   string
}

// RollbarLogger writes every entry locally and forwards it to Rollbar when enabled
type RollbarLogger struct {
	std     *log.Logger
	enabled bool
}

var _ Logger = (*RollbarLogger)(nil)

// New creates a logger. An empty token leaves Rollbar disabled.
func New(std *log.Logger, opts Options) *RollbarLogger {
	if std == nil {
		std = log.New(os.Stderr, "", log.LstdFlags)
	}
	enabled := opts.RollbarToken != ""
	if enabled {
		rollbar.SetToken(opts.RollbarToken)
		rollbar.SetEnvironment(opts.Environment)
		rollbar.SetCodeVersion(opts.CodeVersion)
		rollbar.SetServerHost(opts.ServerHost)
		rollbar.SetStackTracer(rollbarerrors.StackTracer)
	}
	rollbar.SetEnabled(enabled)
	return &RollbarLogger{std: std, enabled: enabled}
}

// Discard returns a logger that drops everything, for tests
func Discard() *RollbarLogger {
	return &RollbarLogger{std: log.New(io.Discard, "", 0)}
}

// Enabled reports whether entries reach Rollbar
func (l *RollbarLogger) Enabled() bool {
	return l.enabled
}

// expected args: key/value pairs or a trailing error
func (l *RollbarLogger) print(level, msg string, args []interface{}) {
	if len(args) == 0 {
		l.std.Printf("[%s] %s", level, msg)
		return
	}
	l.std.Printf("[%s] %s %s", level, msg, formatArgs(args))
}

func (l *RollbarLogger) forward(send func(...interface{}), msg string, args []interface{}) {
	if !l.enabled {
		return
	}
	payload := []interface{}{msg}
	extras := map[string]interface{}{}
	for i := 0; i < len(args); i++ {
		if err, ok := args[i].(error); ok {
			payload = append(payload, err)
			continue
		}
		if i+1 < len(args) {
			extras[fmt.Sprint(args[i])] = args[i+1]
			i++
		}
	}
	if len(extras) > 0 {
		payload = append(payload, extras)
	}
	send(payload...)
}

func (l *RollbarLogger) Info(msg string, args ...interface{}) {
	l.print("INFO", msg, args)
	l.forward(rollbar.Info, msg, args)
}

func (l *RollbarLogger) Warn(msg string, args ...interface{}) {
	l.print("WARN", msg, args)
	l.forward(rollbar.Warning, msg, args)
}

func (l *RollbarLogger) Error(msg string, args ...interface{}) {
	l.print("ERROR", msg, args)
	l.forward(rollbar.Error, msg, args)
}

// Report sends a crash report. It returns false when there is nowhere to send it.
func (l *RollbarLogger) Report(err error, extras map[string]interface{}) bool {
	l.std.Printf("[CRITICAL] %+v", err)
	if !l.enabled {
		return false
	}
	rollbar.Critical(err, extras)
	return true
}

// Close flushes queued Rollbar items
func (l *RollbarLogger) Close() {
	if l.enabled {
		rollbar.Close()
	}
}

func formatArgs(args []interface{}) string {
	out := ""
	for i := 0; i < len(args); i++ {
		if out != "" {
			out += " "
		}
		if err, ok := args[i].(error); ok {
			out += "error=" + err.Error()
			continue
		}
		if i+1 < len(args) {
			out += fmt.Sprintf("%v=%v", args[i], args[i+1])
			i++
			continue
		}
		out += fmt.Sprint(args[i])
	}
	return out
}
