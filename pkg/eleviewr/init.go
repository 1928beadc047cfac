// Package eleviewr is the SDL shell of the viewer: window setup, the frame
// loop and the overlay widgets drawn over the image.
package eleviewr

import (
	"log/slog"
	"os"

	"github.com/eleviewr/eleviewr/pkg/eleviewr/i18n"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/internal"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/internal/logging"
)

// DebugEnvVar turns on debug logging for the viewer internals.
const DebugEnvVar = "ELEVIEWR_DEBUG"

type Options struct {
	WindowTitle string
	// MaxWidth and MaxHeight cap the initial window size; zero means 1920x1080.
	MaxWidth    int32
	MaxHeight   int32
	LogFilename string
	Language    string
}

// Init initializes logging, localisation and SDL.
// Must be called on the main thread before Run.
func Init(options Options) error {
	if options.LogFilename != "" {
		logging.SetLogFilename(options.LogFilename)
	}

	if os.Getenv(DebugEnvVar) != "" {
		logging.SetInternalLogLevel(slog.LevelDebug)
	} else {
		logging.SetInternalLogLevel(slog.LevelWarn)
	}

	var langs []string
	if options.Language != "" {
		langs = append(langs, options.Language)
	}
	if err := i18n.Init(langs); err != nil {
		logging.GetLogger().Warn("Unable to load translations, using English", "error", err)
	}

	title := options.WindowTitle
	if title == "" {
		title = "EleViewr"
	}

	return internal.Init(title, options.MaxWidth, options.MaxHeight)
}

// Close tidies up SDL. Must be called after Run returns.
func Close() {
	internal.SDLCleanup()
}

func SetLogFilename(filename string) {
	logging.SetLogFilename(filename)
}

func GetLogger() *slog.Logger {
	return logging.GetLogger()
}

func SetLogLevel(level slog.Level) {
	logging.SetLogLevel(level)
}

func SetRawLogLevel(level string) {
	logging.SetRawLogLevel(level)
}

func CloseLogger() {
	logging.CloseLogger()
}
