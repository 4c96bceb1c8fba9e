// Package logger provides the StructuredLogger, the concrete core.Logger
// used outside of tests.
package logger

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/subham11/farmer-advisor-go/core"
)

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelError
)

func parseLevel(s string) level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return levelDebug
	case "WARN", "WARNING":
		return levelWarn
	case "ERROR":
		return levelError
	default:
		return levelInfo
	}
}

// StructuredLogger renders `key=value` lines to stdout and supports
// request-scoped child loggers via With(). The minimum level is fixed at
// construction from the level name passed to New; LevelFromEnv reads that
// name from LOG_LEVEL.
type StructuredLogger struct {
	min    level
	fields map[string]interface{}
}

// New creates a StructuredLogger honoring the given minimum level name
// ("debug", "info", "warn", "error").
func New(minLevel string) *StructuredLogger {
	return &StructuredLogger{min: parseLevel(minLevel), fields: nil}
}

// NewDefault creates a StructuredLogger at info level.
func NewDefault() core.Logger {
	return New("info")
}

func (l *StructuredLogger) With(fields map[string]interface{}) core.Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &StructuredLogger{min: l.min, fields: merged}
}

func (l *StructuredLogger) emit(lvl level, tag, msg string, fields map[string]interface{}) {
	if lvl < l.min {
		return
	}
	var parts []string
	parts = append(parts, fmt.Sprintf("[%s] %s", tag, msg))

	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, merged[k]))
	}
	stdoutLog.Println(strings.Join(parts, " "))
}

var stdoutLog = log.New(os.Stdout, "", log.LstdFlags)

func (l *StructuredLogger) Debug(msg string, fields map[string]interface{}) { l.emit(levelDebug, "DEBUG", msg, fields) }
func (l *StructuredLogger) Info(msg string, fields map[string]interface{})  { l.emit(levelInfo, "INFO", msg, fields) }
func (l *StructuredLogger) Warn(msg string, fields map[string]interface{})  { l.emit(levelWarn, "WARN", msg, fields) }
func (l *StructuredLogger) Error(msg string, fields map[string]interface{}) { l.emit(levelError, "ERROR", msg, fields) }

func (l *StructuredLogger) DebugWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	l.Debug(msg, withRequestID(ctx, fields))
}
func (l *StructuredLogger) InfoWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	l.Info(msg, withRequestID(ctx, fields))
}
func (l *StructuredLogger) WarnWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	l.Warn(msg, withRequestID(ctx, fields))
}
func (l *StructuredLogger) ErrorWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	l.Error(msg, withRequestID(ctx, fields))
}

type requestIDKey struct{}

// ContextWithRequestID attaches a request id to ctx for later log calls.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func withRequestID(ctx context.Context, fields map[string]interface{}) map[string]interface{} {
	id, _ := ctx.Value(requestIDKey{}).(string)
	if id == "" {
		return fields
	}
	merged := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged["request_id"] = id
	return merged
}

// LevelFromEnv reads LOG_LEVEL, defaulting to "info".
func LevelFromEnv() string {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		return v
	}
	return "info"
}
