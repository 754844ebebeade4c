package repository

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"gorm.io/gorm/logger"
)

// FilteringLogger drops SQL matching any ignored fragment and tags the rest
// with the first caller outside GORM and this package.
type FilteringLogger struct {
	logger.Interface
	ignored []string
}

func NewFilteringLogger(l logger.Interface, ignored ...string) *FilteringLogger {
	return &FilteringLogger{Interface: l, ignored: ignored}
}

// LogMode implements logger.Interface
func (l *FilteringLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &FilteringLogger{Interface: l.Interface.LogMode(level), ignored: l.ignored}
}

// Trace implements logger.Interface
func (l *FilteringLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	sql, rows := fc()
	if l.shouldIgnore(sql) {
		return
	}

	caller := findCaller()
	l.Interface.Trace(ctx, begin, func() (string, int64) {
		if caller != "" {
			return fmt.Sprintf("[caller: %s] %s", caller, sql), rows
		}
		return sql, rows
	}, err)
}

func (l *FilteringLogger) shouldIgnore(sql string) bool {
	for _, pattern := range l.ignored {
		if pattern != "" && strings.Contains(sql, pattern) {
			return true
		}
	}
	return false
}

func findCaller() string {
	for i := 2; i < 12; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		if strings.Contains(file, "gorm.io") || strings.Contains(file, "internal/repository") {
			continue
		}
		if fn := runtime.FuncForPC(pc); fn != nil {
			name := fn.Name()
			if idx := strings.LastIndexByte(name, '.'); idx != -1 {
				name = name[idx+1:]
			}
			return fmt.Sprintf("%s() at %s:%d", name, shortPath(file), line)
		}
		return fmt.Sprintf("%s:%d", shortPath(file), line)
	}
	return ""
}

// shortPath trims the path to the last two elements to keep log lines short.
func shortPath(file string) string {
	parts := strings.Split(file, "/")
	if len(parts) <= 2 {
		return file
	}
	return strings.Join(parts[len(parts)-2:], "/")
}
