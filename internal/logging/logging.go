package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Init configures the global logger with two sinks: a console writer on
// stderr and a rotating file. Init runs before config.Load, so the .env
// beside the binary is loaded here to make LOGS_FOLDER available.
func Init(verbose bool) {
	exePath, err := os.Executable()
	if err == nil {
		_ = godotenv.Load(filepath.Join(filepath.Dir(exePath), ".env"))
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	isTerminal := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !isTerminal,
	}

	logDir := os.Getenv("LOGS_FOLDER")
	if logDir == "" {
		if err == nil {
			logDir = filepath.Join(filepath.Dir(exePath), "logs")
		} else {
			logDir = "logs"
		}
	}

	writers := []io.Writer{consoleWriter}
	if mkErr := os.MkdirAll(logDir, 0755); mkErr == nil {
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(logDir, "goalpulse.log"),
			MaxSize:    16, // megabytes
			MaxBackups: 8,
			MaxAge:     90, // days
			Compress:   true,
		})
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Logger()

	if len(writers) == 1 {
		log.Warn().Str("path", logDir).Msg("Log directory unavailable, logging to console only")
	}
}
