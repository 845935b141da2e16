package internal

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const logDirEnvVar = "GABAMENU_LOG_DIR"

var (
	logFile     *os.File
	logFilename string
	logWriter   io.Writer

	setupOnce sync.Once
	output    io.Writer

	loggerOnce sync.Once
	logger     *slog.Logger
	levelVar   *slog.LevelVar

	internalLoggerOnce sync.Once
	internalLogger     *slog.Logger
	internalLevelVar   *slog.LevelVar
)

// SetLogFilename enables file logging. Must be called before the first logger is requested.
func SetLogFilename(filename string) {
	logFilename = filename
}

// SetLogWriter replaces stdout as the console sink. Must be called before the first logger is requested.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

func setup() {
	setupOnce.Do(func() {
		console := logWriter
		if console == nil {
			console = os.Stdout
		}
		output = console

		if logFilename == "" {
			return
		}

		dir := os.Getenv(logDirEnvVar)
		if dir == "" {
			dir = "logs"
		}

		if err := os.MkdirAll(dir, 0755); err != nil {
			panic("Failed to create logs directory: " + err.Error())
		}

		var err error
		logFile, err = os.OpenFile(filepath.Join(dir, logFilename), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			panic("Failed to open log file: " + err.Error())
		}

		output = io.MultiWriter(console, logFile)
	})
}

func newJSONLogger(level *slog.LevelVar) *slog.Logger {
	setup()

	handler := slog.NewJSONHandler(output, &slog.HandlerOptions{
		Level:     level,
		AddSource: false,
	})
	return slog.New(handler)
}

// GetLogger returns the logger intended for applications built on top of gabamenu.
func GetLogger() *slog.Logger {
	loggerOnce.Do(func() {
		levelVar = &slog.LevelVar{}
		logger = newJSONLogger(levelVar)
	})
	return logger
}

// GetInternalLogger returns the logger used by the widgets themselves.
func GetInternalLogger() *slog.Logger {
	internalLoggerOnce.Do(func() {
		internalLevelVar = &slog.LevelVar{}
		internalLevelVar.Set(slog.LevelError)
		internalLogger = newJSONLogger(internalLevelVar).With("component", "gabamenu")
	})
	return internalLogger
}

func SetLogLevel(level slog.Level) {
	GetLogger()
	levelVar.Set(level)
}

func SetInternalLogLevel(level slog.Level) {
	GetInternalLogger()
	internalLevelVar.Set(level)
}

// ParseLogLevel maps a config string to a slog level, defaulting to info.
func ParseLogLevel(rawLevel string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(rawLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func SetRawLogLevel(rawLevel string) {
	SetLogLevel(ParseLogLevel(rawLevel))
}

func CloseLogger() {
	if logFile != nil {
		logFile.Close()
	}
}
