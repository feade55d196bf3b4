package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

const debugLogName = "autocheckin_debug.log"

// the progress view owns stdout, so debug logs go to a file in the OS temp
// folder. Without --debug only errors reach stderr.
func logInit(debugMode bool, stderr io.Writer) func() {
	var logger *slog.Logger
	closer := func() {}

	if debugMode {
		logFilePath := filepath.Join(os.TempDir(), debugLogName)
		logFile := &lumberjack.Logger{
			Filename:   logFilePath,
			MaxSize:    5, // megabytes
			MaxBackups: 3,
			MaxAge:     14, // days
		}
		logger = slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		closer = func() { logFile.Close() }
		logger.Info("Running in DEBUG mode", "log_file", logFilePath)
	} else {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
			Level: slog.LevelError, // Only show errors
		}))
	}
	slog.SetDefault(logger)
	return closer
}
