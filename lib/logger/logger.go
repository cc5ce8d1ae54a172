// Copyright 2024 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package logger provides leveled logging with optional color, carried on a
// context so that packages deep in the call tree can log without plumbing a
// logger value through every signature.
package logger

import (
	"context"
	"fmt"
	"io"
	goLog "log"
	"os"

	"github.com/jmisiaszek/sik-2/lib/color"
)

type loggerKeyType struct{}

// WithLogger returns the context with its logger set as the provided Logger.
func WithLogger(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerKeyType{}, logger)
}

// LoggerFromContext returns the context logger if configured, otherwise nil.
func LoggerFromContext(ctx context.Context) *Logger {
	if v, ok := ctx.Value(loggerKeyType{}).(*Logger); ok && v != nil {
		return v
	}
	return nil
}

// Logger writes leveled, optionally colored lines to an output writer and an
// error writer.
type Logger struct {
	LoggerLevel   LogLevel
	goLogger      *goLog.Logger
	goErrorLogger *goLog.Logger
	color         color.Color
	prefix        string
}

// LogLevel filters which messages a Logger emits.
type LogLevel int

const (
	NoLogLevel LogLevel = iota
	FatalLevel
	ErrorLevel
	WarningLevel
	InfoLevel
	DebugLevel
	TraceLevel
)

var levelToName = map[LogLevel]string{
	NoLogLevel:   "no",
	FatalLevel:   "fatal",
	ErrorLevel:   "error",
	WarningLevel: "warning",
	InfoLevel:    "info",
	DebugLevel:   "debug",
	TraceLevel:   "trace",
}

// Populated at runtime by init() by inverting levelToName.
var nameToLevel = map[string]LogLevel{}

func init() {
	for level, name := range levelToName {
		nameToLevel[name] = level
	}
}

// Copied from Go log so callers don't need to also import log.
const (
	Ldate         = 1 << iota             // the date in the local time zone: 2009/01/23
	Ltime                                 // the time in the local time zone: 01:23:23
	Lmicroseconds                         // microsecond resolution: 01:23:23.123123.  assumes Ltime.
	Llongfile                             // full file name and line number: /a/b/c/d.go:23
	Lshortfile                            // final file name element and line number: d.go:23. overrides Llongfile
	LUTC                                  // if Ldate or Ltime is set, use UTC rather than the local time zone
	Lmsgprefix                            // move the "prefix" from the beginning of the line to before the message
	LstdFlags     = Ldate | Lmicroseconds // initial values for the standard logger
)

// Call depth of the exported helpers, so Lshortfile names the caller.
const startDepth = 2

// String returns the name of the LogLevel, or an empty string for a level
// with no name.
func (l *LogLevel) String() string {
	return levelToName[*l]
}

// Set sets the LogLevel based on its string value. It implements flag.Value.
func (l *LogLevel) Set(s string) error {
	level, ok := nameToLevel[s]
	if !ok {
		return fmt.Errorf("%s is not a valid level", s)
	}
	*l = level
	return nil
}

// NewLogger creates a new logger instance. loggerLevel is the threshold below
// which messages are dropped; color controls per-level tags; outWriter and
// errWriter receive non-error and error output respectively; prefix precedes
// every line.
func NewLogger(loggerLevel LogLevel, color color.Color, outWriter, errWriter io.Writer, prefix string) *Logger {
	if outWriter == nil {
		outWriter = os.Stdout
	}
	if errWriter == nil {
		errWriter = os.Stderr
	}
	return &Logger{
		LoggerLevel:   loggerLevel,
		goLogger:      goLog.New(outWriter, "", LstdFlags),
		goErrorLogger: goLog.New(errWriter, "", LstdFlags),
		color:         color,
		prefix:        prefix,
	}
}

// SetFlags sets the output flags (Ldate and friends) on both writers.
func (l *Logger) SetFlags(flags int) {
	l.goLogger.SetFlags(flags)
	l.goErrorLogger.SetFlags(flags)
}

func (l *Logger) log(callDepth int, tag, format string, a ...any) {
	l.goLogger.Output(callDepth+1, fmt.Sprintf("%s%s%s", l.prefix, tag, fmt.Sprintf(format, a...)))
}

func (l *Logger) errLog(callDepth int, tag, format string, a ...any) {
	l.goErrorLogger.Output(callDepth+1, fmt.Sprintf("%s%s%s", l.prefix, tag, fmt.Sprintf(format, a...)))
}

func (l *Logger) logf(callDepth int, logLevel LogLevel, format string, a ...any) {
	switch logLevel {
	case InfoLevel:
		l.infof(callDepth+1, format, a...)
	case DebugLevel:
		l.debugf(callDepth+1, format, a...)
	case TraceLevel:
		l.tracef(callDepth+1, format, a...)
	case WarningLevel:
		l.warningf(callDepth+1, format, a...)
	case ErrorLevel:
		l.errorf(callDepth+1, format, a...)
	case FatalLevel:
		l.fatalf(callDepth+1, format, a...)
	default:
		panic(fmt.Sprintf("undefined log level: %v, log message: %s", logLevel, fmt.Sprintf(format, a...)))
	}
}

func logf(callDepth int, ctx context.Context, logLevel LogLevel, format string, a ...any) {
	if v := LoggerFromContext(ctx); v != nil {
		v.logf(callDepth+1, logLevel, format, a...)
	} else {
		goLog.Output(callDepth+1, fmt.Sprintf(format, a...))
	}
}

// Infof logs the string if the logger is at least InfoLevel.
func (l *Logger) Infof(format string, a ...any) {
	l.infof(startDepth, format, a...)
}

func (l *Logger) infof(callDepth int, format string, a ...any) {
	if l.LoggerLevel >= InfoLevel {
		l.log(callDepth+1, "", format, a...)
	}
}

// Infof logs through the context logger, or the stdlib default if none is set.
func Infof(ctx context.Context, format string, a ...any) {
	logf(startDepth, ctx, InfoLevel, format, a...)
}

// Debugf logs the string if the logger is at least DebugLevel.
func (l *Logger) Debugf(format string, a ...any) {
	l.debugf(startDepth, format, a...)
}

func (l *Logger) debugf(callDepth int, format string, a ...any) {
	if l.LoggerLevel >= DebugLevel {
		l.log(callDepth+1, l.color.Cyan("DEBUG: "), format, a...)
	}
}

func Debugf(ctx context.Context, format string, a ...any) {
	logf(startDepth, ctx, DebugLevel, format, a...)
}

// Tracef logs the string if the logger is at least TraceLevel.
func (l *Logger) Tracef(format string, a ...any) {
	l.tracef(startDepth, format, a...)
}

func (l *Logger) tracef(callDepth int, format string, a ...any) {
	if l.LoggerLevel >= TraceLevel {
		l.log(callDepth+1, l.color.Blue("TRACE: "), format, a...)
	}
}

func Tracef(ctx context.Context, format string, a ...any) {
	logf(startDepth, ctx, TraceLevel, format, a...)
}

// Warningf logs the string if the logger is at least WarningLevel.
func (l *Logger) Warningf(format string, a ...any) {
	l.warningf(startDepth, format, a...)
}

func (l *Logger) warningf(callDepth int, format string, a ...any) {
	if l.LoggerLevel >= WarningLevel {
		l.log(callDepth+1, l.color.Yellow("WARN: "), format, a...)
	}
}

func Warningf(ctx context.Context, format string, a ...any) {
	logf(startDepth, ctx, WarningLevel, format, a...)
}

// Errorf logs the string if the logger is at least ErrorLevel.
func (l *Logger) Errorf(format string, a ...any) {
	l.errorf(startDepth, format, a...)
}

func (l *Logger) errorf(callDepth int, format string, a ...any) {
	if l.LoggerLevel >= ErrorLevel {
		l.errLog(callDepth+1, l.color.Red("ERROR: "), format, a...)
	}
}

func Errorf(ctx context.Context, format string, a ...any) {
	logf(startDepth, ctx, ErrorLevel, format, a...)
}

// Fatalf logs the string if the logger is at least FatalLevel, then exits.
func (l *Logger) Fatalf(format string, a ...any) {
	l.fatalf(startDepth, format, a...)
}

func (l *Logger) fatalf(callDepth int, format string, a ...any) {
	if l.LoggerLevel >= FatalLevel {
		l.errLog(callDepth+1, l.color.Red("FATAL: "), format, a...)
		os.Exit(1)
	}
}

func Fatalf(ctx context.Context, format string, a ...any) {
	logf(startDepth, ctx, FatalLevel, format, a...)
}
