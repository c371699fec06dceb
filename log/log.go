/*
 * Apache License 2.0
 *
 * Copyright (c) 2022, Austin Zhai
 * All rights reserved.
 */
package log

import "sync/atomic"

type Level int

const (
	LevelNull Level = iota
	LevelTrace
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

var levelStrings = []string{"null", "trace", "debug", "info", "warn", "error"}

func (level Level) String() string {
	if level < LevelNull || int(level) >= len(levelStrings) {
		return "unknown"
	}
	return levelStrings[level]
}

type Logger interface {
	Trace(v ...interface{})
	Tracef(format string, v ...interface{})
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})
	Info(v ...interface{})
	Infof(format string, v ...interface{})
	Warn(v ...interface{})
	Warnf(format string, v ...interface{})
	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

type holder struct {
	logger Logger
}

var defaultLog atomic.Value

func init() {
	defaultLog.Store(holder{logger: NewKLog()})
}

// SetLog replaces the package level logger, nil restores klog.
func SetLog(logger Logger) {
	if logger == nil {
		logger = NewKLog()
	}
	defaultLog.Store(holder{logger: logger})
}

func DefaultLog() Logger {
	return defaultLog.Load().(holder).logger
}

func Trace(v ...interface{}) {
	DefaultLog().Trace(v...)
}

func Tracef(format string, v ...interface{}) {
	DefaultLog().Tracef(format, v...)
}

func Debug(v ...interface{}) {
	DefaultLog().Debug(v...)
}

func Debugf(format string, v ...interface{}) {
	DefaultLog().Debugf(format, v...)
}

func Info(v ...interface{}) {
	DefaultLog().Info(v...)
}

func Infof(format string, v ...interface{}) {
	DefaultLog().Infof(format, v...)
}

func Warn(v ...interface{}) {
	DefaultLog().Warn(v...)
}

func Warnf(format string, v ...interface{}) {
	DefaultLog().Warnf(format, v...)
}

func Error(v ...interface{}) {
	DefaultLog().Error(v...)
}

func Errorf(format string, v ...interface{}) {
	DefaultLog().Errorf(format, v...)
}
