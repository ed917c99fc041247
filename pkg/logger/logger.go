// Package logger builds the process-wide zerolog logger from config and
// wraps it in a small leveled facade. The facade covers the simple
// "message plus a few fields" calls the workers and mains make; anything
// that composes richer events takes the zerolog.Logger itself via
// Zerolog.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileConfig enables a rotating log file next to (or instead of) stdout.
type FileConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type Config struct {
	Level      string     `mapstructure:"level"`
	TimeFormat string     `mapstructure:"time_format"`
	Console    bool       `mapstructure:"console"`
	File       FileConfig `mapstructure:"file"`
}

type Logger struct {
	zl zerolog.Logger
}

func NewLogger(cfg *Config) *Logger {
	if cfg == nil {
		cfg = &Config{Level: "info", Console: true}
	}

	zl := zerolog.New(zerolog.MultiLevelWriter(sinks(cfg)...)).
		Level(parseLevel(cfg.Level)).
		With().
		Timestamp().
		Caller().
		Logger()

	return &Logger{zl: zl}
}

// parseLevel is forgiving: an empty or unknown level means info.
func parseLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// sinks returns the configured writers. With the file sink disabled the
// console is always on, so a zero config still logs somewhere.
func sinks(cfg *Config) []io.Writer {
	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = time.RFC3339
	}

	var out []io.Writer
	if cfg.Console || !cfg.File.Enabled {
		out = append(out, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: timeFormat})
	}
	if cfg.File.Enabled {
		out = append(out, &lumberjack.Logger{
			Filename:   cfg.File.Path,
			MaxSize:    cfg.File.MaxSizeMB,
			MaxBackups: cfg.File.MaxBackups,
			MaxAge:     cfg.File.MaxAgeDays,
			Compress:   cfg.File.Compress,
		})
	}
	return out
}

// Zerolog exposes the underlying logger for components that compose their
// own event chains.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}

// Fields are passed as alternating key/value pairs, zerolog style.

func (l *Logger) Debug(msg string, fields ...interface{}) {
	l.zl.Debug().Fields(fields).Msg(msg)
}

func (l *Logger) Info(msg string, fields ...interface{}) {
	l.zl.Info().Fields(fields).Msg(msg)
}

func (l *Logger) Warn(msg string, fields ...interface{}) {
	l.zl.Warn().Fields(fields).Msg(msg)
}

func (l *Logger) Error(err error, msg string, fields ...interface{}) {
	l.zl.Error().Err(err).Fields(fields).Msg(msg)
}

func (l *Logger) Fatal(err error, msg string, fields ...interface{}) {
	l.zl.Fatal().Err(err).Fields(fields).Msg(msg)
}
