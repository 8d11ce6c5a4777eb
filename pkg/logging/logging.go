// Package logging configures the global zerolog logger for the boxcam CLI.
// Library packages log through zerolog's global logger; this package decides
// where those events go.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls log destination and verbosity.
type Config struct {
	Level       string // "debug", "info", "warn", "error"
	LogToFile   bool
	LogFileName string // base name for the rotating file, without extension
	MaxFileSize int    // megabytes per file before rotation
}

// Setup installs the global zerolog logger: a styled console writer on
// stderr, plus an optional rotating file sink.
func Setup(cfg Config) {
	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05.000",
	}}

	if cfg.LogToFile {
		if fw := buildFileWriter(cfg); fw != nil {
			writers = append(writers, fw)
		}
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Logger()

	SetLevel(cfg.Level)
}

// SetLevel sets the global zerolog level from a string.
// Defaults to info if the string is unrecognized.
func SetLevel(level string) {
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}

// buildFileWriter creates the rotating file writer, returning nil on setup
// failure so logging falls back to console only.
func buildFileWriter(cfg Config) io.Writer {
	logDir := "./logs"
	if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
		log.Err(err).Msg("failed to create log directory")
		return nil
	}

	name := cfg.LogFileName
	if name == "" {
		name = "boxcam"
	}

	size := cfg.MaxFileSize
	if size <= 0 {
		size = 10
	}

	return &lumberjack.Logger{
		Filename:   filepath.Join(logDir, name+".log"),
		MaxSize:    size,
		MaxBackups: 3,
		MaxAge:     30,
	}
}
