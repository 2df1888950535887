package arbor

import (
	"log/slog"
	"os"
	"sync/atomic"
)

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(defaultLogger())
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

// SetLogger configures the logger used by the binding and by the
// reconcilers it creates afterwards. By default warnings go to stderr as
// text. Pass nil to restore that.
//
// Log levels used:
//   - [slog.LevelDebug]: stage lifecycle, commit statistics
//   - [slog.LevelWarn]: one-time usage advisories, duplicate element keys
//
// SetLogger is safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = defaultLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current binding logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
