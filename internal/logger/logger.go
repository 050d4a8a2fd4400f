// Package logger writes structured logs to a rotating file beside the
// settings database. Nothing reaches the terminal unless debug is on, since
// the TUI owns the screen.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/pillminder/internal/constants"
)

type Config struct {
	Debug bool
	// Dir is the config directory; logs go to Dir/logs.
	Dir string
	// Stderr receives the debug mirror. Defaults to os.Stderr.
	Stderr io.Writer
}

var (
	std  *log.Logger
	path string
)

func Init(cfg Config) error {
	dir := filepath.Join(cfg.Dir, "logs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	path = filepath.Join(dir, constants.AppName+".log")

	var out io.Writer = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // MB
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	}

	level := log.InfoLevel
	if cfg.Debug {
		level = log.DebugLevel
		mirror := cfg.Stderr
		if mirror == nil {
			mirror = os.Stderr
		}
		out = io.MultiWriter(mirror, out)
	}

	std = log.NewWithOptions(out, log.Options{
		Prefix:          constants.AppName,
		Level:           level,
		ReportTimestamp: true,
		ReportCaller:    cfg.Debug,
		CallerOffset:    2,
	})
	return nil
}

// Path is the active log file, or "" before Init.
func Path() string { return path }

func Debug(msg string, keyvals ...any) { emit(log.DebugLevel, msg, keyvals) }
func Info(msg string, keyvals ...any)  { emit(log.InfoLevel, msg, keyvals) }
func Warn(msg string, keyvals ...any)  { emit(log.WarnLevel, msg, keyvals) }
func Error(msg string, keyvals ...any) { emit(log.ErrorLevel, msg, keyvals) }

// emit is a no-op until Init so packages can log from tests.
func emit(level log.Level, msg string, keyvals []any) {
	if std == nil {
		return
	}
	std.Log(level, msg, keyvals...)
}
