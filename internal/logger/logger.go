// Package logger holds the process-wide pulse logger. Output goes to a
// rotating file under the config directory; foreground commands also echo
// it to stderr.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/pulse/internal/constants"
)

const (
	maxSizeMB  = 10
	maxBackups = 3
	maxAgeDays = 28
)

// Logger is nil until Init; the package helpers are no-ops before then.
var Logger *log.Logger

var path string

// foreground commands run until interrupted, so scheduler fires and
// requests are only visible if they reach the terminal.
var foreground = map[string]bool{"watch": true, "serve": true}

// Options configures Init.
type Options struct {
	// Dir is the config directory. The log file is Dir/logs/pulse.log.
	Dir   string
	Debug bool
	// Command is the full command path, e.g. "note add".
	Command string
}

// Mirrored reports whether command echoes its log to stderr.
func Mirrored(command string) bool {
	name, _, _ := strings.Cut(strings.TrimSpace(command), " ")
	return foreground[name]
}

// Init opens the rotating log file and replaces Logger.
func Init(opts Options) error {
	dir := filepath.Join(opts.Dir, "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	path = filepath.Join(dir, constants.AppName+".log")

	var w io.Writer = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}
	if opts.Debug || Mirrored(opts.Command) {
		w = io.MultiWriter(os.Stderr, w)
	}

	level := log.InfoLevel
	if opts.Debug {
		level = log.DebugLevel
	}
	Logger = log.NewWithOptions(w, log.Options{
		ReportCaller:    opts.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	if opts.Command != "" {
		Logger = Logger.With("cmd", opts.Command)
	}
	return nil
}

// Path returns the active log file, or "" before Init.
func Path() string {
	if Logger == nil {
		return ""
	}
	return path
}

func logAt(level log.Level, msg string, keyvals []interface{}) {
	if Logger != nil {
		Logger.Log(level, msg, keyvals...)
	}
}

func Debug(msg string, keyvals ...interface{}) { logAt(log.DebugLevel, msg, keyvals) }
func Info(msg string, keyvals ...interface{})  { logAt(log.InfoLevel, msg, keyvals) }
func Warn(msg string, keyvals ...interface{})  { logAt(log.WarnLevel, msg, keyvals) }
func Error(msg string, keyvals ...interface{}) { logAt(log.ErrorLevel, msg, keyvals) }

// Fatal logs msg and exits with status 1.
func Fatal(msg string, keyvals ...interface{}) {
	logAt(log.FatalLevel, msg, keyvals)
	os.Exit(1)
}
