package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	logFile     *os.File
	logFilename string

	output = &switchWriter{w: os.Stderr}

	loggerOnce sync.Once
	logger     *slog.Logger
	levelVar   *slog.LevelVar

	internalLoggerOnce sync.Once
	internalLogger     *slog.Logger
	internalLevelVar   *slog.LevelVar
)

// switchWriter lets both loggers change destination after they are built.
type switchWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *switchWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (s *switchWriter) set(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w = w
}

// SetLogFilename makes the loggers also write to <UserCacheDir>/eleviewr/logs/<filename>.
// It takes effect for loggers already handed out. An empty name goes back
// to stderr only.
func SetLogFilename(filename string) {
	if filename == logFilename && (filename == "" || logFile != nil) {
		return
	}
	logFilename = filename

	previous := logFile
	logFile = nil
	output.set(os.Stderr)
	if previous != nil {
		previous.Close()
	}

	if filename == "" {
		return
	}

	dir, err := LogDir()
	if err == nil {
		err = os.MkdirAll(dir, 0755)
	}
	if err == nil {
		logFile, err = os.OpenFile(filepath.Join(dir, filename), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	}
	if err != nil {
		logFile = nil
		GetInternalLogger().Warn("Unable to open log file; logging to stderr only", "file", filename, "error", err)
		return
	}

	output.set(io.MultiWriter(os.Stderr, logFile))
}

// LogDir returns the directory log files are written to.
func LogDir() (string, error) {
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cache, "eleviewr", "logs"), nil
}

func GetLogger() *slog.Logger {
	loggerOnce.Do(func() {
		levelVar = &slog.LevelVar{}

		handler := slog.NewJSONHandler(output, &slog.HandlerOptions{
			Level:     levelVar,
			AddSource: false,
		})
		logger = slog.New(handler)
	})
	return logger
}

func GetInternalLogger() *slog.Logger {
	internalLoggerOnce.Do(func() {
		internalLevelVar = &slog.LevelVar{}
		internalLevelVar.Set(slog.LevelWarn)

		handler := slog.NewJSONHandler(output, &slog.HandlerOptions{
			Level:     internalLevelVar,
			AddSource: false,
		})
		internalLogger = slog.New(handler)
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

// ParseLevel maps a level name to a slog.Level. Unknown names map to info.
func ParseLevel(rawLevel string) slog.Level {
	switch strings.ToLower(rawLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func SetRawLogLevel(rawLevel string) {
	SetLogLevel(ParseLevel(rawLevel))
}

func CloseLogger() {
	SetLogFilename("")
}
