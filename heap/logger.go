package heap

import (
	"io"
	"log/slog"
	"os"
)

// debugAlloc is a compile-time toggle for verbose allocation tracing.
// Flip it during local debugging, never in committed code.
const debugAlloc = false

// logAlloc mirrors debugAlloc but is controlled at runtime, so a
// deployed binary can turn on allocation tracing without a rebuild.
var logAlloc = os.Getenv("EMBERHEAP_LOG_ALLOC") != ""

// defaultLogger discards everything until SetLogger installs a real one.
var defaultLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// SetLogger installs l as the package-wide debug logger. Passing nil
// restores the discarding default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = defaultLogger
	}
	currentLogger = l
}

var currentLogger = defaultLogger

func logTrace(msg string, args ...any) {
	if debugAlloc || logAlloc {
		currentLogger.Debug(msg, args...)
	}
}
