package logging

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lmittmann/tint"
)

var (
	logger    atomic.Pointer[slog.Logger]
	debugMode atomic.Bool
)

func init() {
	logger.Store(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// SetupLogging configures logging.
// If filename is empty, logging is disabled so nothing reaches the terminal
// the UI is drawing on.
// If filename is set, logs go to that file at debug level and Bubble Tea logs
// are enabled too.
func SetupLogging(filename string) (cleanup func(), err error) {
	if filename == "" {
		log.SetOutput(io.Discard)
		logger.Store(slog.New(slog.NewTextHandler(io.Discard, nil)))
		debugMode.Store(false)
		return func() {}, nil
	}

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	// configure Bubble Tea logger
	tf, err := tea.LogToFile(filename, "tea")
	if err != nil {
		f.Close()
		return nil, err
	}

	Configure(f, true)

	cleanup = func() {
		tf.Close()
		f.Close()
	}
	return cleanup, nil
}

// Configure points the package logger at w. Used directly by the
// non-interactive commands, which log to stderr.
func Configure(w io.Writer, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	l := slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		AddSource:  debug,
		NoColor:    !isTerminal(w),
		TimeFormat: time.DateTime,
	}))
	logger.Store(l)
	debugMode.Store(debug)
	// stdlib log.Printf callers end up in the same place.
	log.SetOutput(w)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

func Logger() *slog.Logger { return logger.Load() }

func IsDebugMode() bool { return debugMode.Load() }

func Debug(msg string, args ...any) { logger.Load().Debug(msg, args...) }

func Debugf(format string, args ...any) { logger.Load().Debug(fmt.Sprintf(format, args...)) }
func Infof(format string, args ...any)  { logger.Load().Info(fmt.Sprintf(format, args...)) }
func Warnf(format string, args ...any)  { logger.Load().Warn(fmt.Sprintf(format, args...)) }
func Errorf(format string, args ...any) { logger.Load().Error(fmt.Sprintf(format, args...)) }

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
