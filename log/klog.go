/*
 * Apache License 2.0
 *
 * Copyright (c) 2022, Austin Zhai
 * All rights reserved.
 */
package log

import (
	"sync"

	"k8s.io/klog/v2"
)

// KLog routes leveled calls to klog's verbosity levels, errors always go
// through klog.Error regardless of -v.
type KLog struct {
	mu          sync.RWMutex
	verbosities map[Level]klog.Level
}

// default verbosities see: https://github.com/kubernetes/community/blob/master/contributors/devel/sig-instrumentation/logging.md
func NewKLog() *KLog {
	return &KLog{
		verbosities: map[Level]klog.Level{
			LevelTrace: 5,
			LevelDebug: 4,
			LevelInfo:  3,
			LevelWarn:  2,
		},
	}
}

// SetVerbosity maps a level to a klog verbosity, LevelError can't be remapped.
func (log *KLog) SetVerbosity(level Level, verbosity int) {
	if level == LevelError || level == LevelNull {
		return
	}
	log.mu.Lock()
	defer log.mu.Unlock()
	log.verbosities[level] = klog.Level(verbosity)
}

func (log *KLog) Verbosity(level Level) (int, bool) {
	log.mu.RLock()
	defer log.mu.RUnlock()
	verbosity, ok := log.verbosities[level]
	return int(verbosity), ok
}

// Enabled reports whether a message at level would be written with the
// current -v setting.
func (log *KLog) Enabled(level Level) bool {
	if level == LevelError {
		return true
	}
	return log.v(level).Enabled()
}

func (log *KLog) v(level Level) klog.Verbose {
	log.mu.RLock()
	verbosity := log.verbosities[level]
	log.mu.RUnlock()
	return klog.V(verbosity)
}

func (log *KLog) Trace(v ...interface{}) {
	log.v(LevelTrace).Info(v...)
}

func (log *KLog) Tracef(format string, v ...interface{}) {
	log.v(LevelTrace).Infof(format, v...)
}

func (log *KLog) Debug(v ...interface{}) {
	log.v(LevelDebug).Info(v...)
}

func (log *KLog) Debugf(format string, v ...interface{}) {
	log.v(LevelDebug).Infof(format, v...)
}

func (log *KLog) Info(v ...interface{}) {
	log.v(LevelInfo).Info(v...)
}

func (log *KLog) Infof(format string, v ...interface{}) {
	log.v(LevelInfo).Infof(format, v...)
}

func (log *KLog) Warn(v ...interface{}) {
	log.v(LevelWarn).Info(v...)
}

func (log *KLog) Warnf(format string, v ...interface{}) {
	log.v(LevelWarn).Infof(format, v...)
}

func (log *KLog) Error(v ...interface{}) {
	klog.Error(v...)
}

func (log *KLog) Errorf(format string, v ...interface{}) {
	klog.Errorf(format, v...)
}

// Flush writes out buffered klog entries, call before exiting.
func Flush() {
	klog.Flush()
}
