package log

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	diagLog  zerolog.Logger
	diagFile *os.File
	logMu    sync.Mutex
	logReady bool
	pid      int
	session  string
	dir      string
)

func ResolveDir(flagPath string) (string, error) {
	// Priority 1: -logpath flag
	if flagPath != "" {
		return absPath(flagPath)
	}

	// Priority 2: TRADETOOLS_LOG_PATH environment variable
	if envPath := os.Getenv("TRADETOOLS_LOG_PATH"); envPath != "" {
		return absPath(envPath)
	}

	// Priority 3: Default OS-specific location
	return getDefaultDir()
}

func absPath(p string) (string, error) {
	if filepath.IsAbs(p) {
		return p, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, p), nil
}

func SetDir(d string) {
	dir = d
}

func Dir() string {
	return dir
}

func EnsureDir() error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	return nil
}

// Session returns the id stamped on every line of this process's log.
func Session() string {
	logMu.Lock()
	defer logMu.Unlock()
	return session
}

func Init() error {
	logMu.Lock()
	defer logMu.Unlock()

	if err := EnsureDir(); err != nil {
		return err
	}

	pid = os.Getpid()
	session = uuid.NewString()

	var err error
	diagPath := filepath.Join(dir, "diagnostics_log.txt")
	diagFile, err = os.OpenFile(diagPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        diagFile,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}
	diagLog = zerolog.New(consoleWriter).With().
		Timestamp().
		Int("pid", pid).
		Str("session", session).
		Logger()

	logReady = true
	return nil
}

func Close() {
	logMu.Lock()
	defer logMu.Unlock()
	if diagFile != nil {
		diagFile.Close()
		diagFile = nil
	}
	logReady = false
}

// emit runs fn against the diagnostics logger while holding logMu, so a
// concurrent Close cannot release the file underneath it.
func emit(fn func(l *zerolog.Logger)) {
	logMu.Lock()
	defer logMu.Unlock()
	if !logReady {
		return
	}
	fn(&diagLog)
}

func Info(msg string) {
	emit(func(l *zerolog.Logger) { l.Info().Msg(msg) })
}

func Error(msg string) {
	emit(func(l *zerolog.Logger) { l.Error().Msg(msg) })
}

func Errorf(format string, args ...any) {
	emit(func(l *zerolog.Logger) { l.Error().Msg(fmt.Sprintf(format, args...)) })
}

func Warn(msg string) {
	emit(func(l *zerolog.Logger) { l.Warn().Msg(msg) })
}

func Warnf(format string, args ...any) {
	emit(func(l *zerolog.Logger) { l.Warn().Msg(fmt.Sprintf(format, args...)) })
}

func SessionStart(surface, binding string) {
	emit(func(l *zerolog.Logger) {
		l.Info().
			Str("surface", surface).
			Str("binding", binding).
			Msg("session_start")
	})
}

func SessionEnd(toggles int) {
	emit(func(l *zerolog.Logger) {
		l.Info().
			Int("toggles", toggles).
			Msg("session_end")
	})
}

func ShortcutRegistered(binding string) {
	emit(func(l *zerolog.Logger) {
		l.Info().Str("binding", binding).Msg("shortcut_registered")
	})
}

func Toggle(action string, elapsed time.Duration) {
	emit(func(l *zerolog.Logger) {
		l.Info().
			Str("action", action).
			Float64("elapsed_ms", float64(elapsed.Microseconds())/1000).
			Msg("toggle")
	})
}

// WindowError records a swallowed window command failure.
func WindowError(op string, err error) {
	if err == nil {
		return
	}
	emit(func(l *zerolog.Logger) {
		l.Warn().Str("op", op).Err(err).Msg("window_error")
	})
}

// PricesSaved records a write of the price list.
func PricesSaved(path string, items int) {
	emit(func(l *zerolog.Logger) {
		l.Info().Str("path", path).Int("items", items).Msg("prices_saved")
	})
}

// Conversion records a currency conversion the user ran.
func Conversion(from, to string, amount, result float64) {
	emit(func(l *zerolog.Logger) {
		l.Info().
			Str("from", from).
			Str("to", to).
			Float64("amount", amount).
			Float64("result", result).
			Msg("convert")
	})
}
