// Package log configures the process-wide slog logger.
package log

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	initOnce    sync.Once
	initialized atomic.Bool
)

// Setup installs a JSON slog handler writing to a rotated logFile. Only the
// first call has an effect.
func Setup(logFile string, debug bool) {
	initOnce.Do(func() {
		logRotator := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // Max size in MB
			MaxBackups: 0,  // Number of backups
			MaxAge:     30, // Days
			Compress:   false,
		}

		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}

		logger := slog.NewJSONHandler(logRotator, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		})

		slog.SetDefault(slog.New(logger))
		initialized.Store(true)
	})
}

// Initialized reports whether [Setup] ran.
func Initialized() bool {
	return initialized.Load()
}

// RecoverPanic logs a panic with its stack trace and writes a crash file
// next to the working directory. cleanup runs afterwards when set.
func RecoverPanic(name string, cleanup func()) {
	r := recover()
	if r == nil {
		return
	}

	filename := fmt.Sprintf("ledgerlens-panic-%s-%s.log", name, time.Now().Format("20060102-150405"))
	slog.Error("Panic recovered", "name", name, "panic", r, "file", filename)

	if file, err := os.Create(filename); err == nil {
		defer file.Close()
		fmt.Fprintf(file, "Panic in %s: %v\n\n", name, r)
		fmt.Fprintf(file, "Time: %s\n\n", time.Now().Format(time.RFC3339))
		fmt.Fprintf(file, "Stack Trace:\n%s\n", debug.Stack())
	}

	if cleanup != nil {
		cleanup()
	}
}
