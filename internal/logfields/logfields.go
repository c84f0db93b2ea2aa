package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyFile       = "file"
	KeyTarget     = "target"
	KeyResolved   = "resolved"
	KeyPath       = "path"
	KeyBackend    = "backend"
	KeyExtractor  = "extractor"
	KeyCount      = "count"
	KeyBroken     = "broken"
	KeyDurationMS = "duration_ms"
	KeySubject    = "subject"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func File(path string) slog.Attr      { return slog.String(KeyFile, path) }
func Target(raw string) slog.Attr     { return slog.String(KeyTarget, raw) }
func Resolved(path string) slog.Attr  { return slog.String(KeyResolved, path) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Backend(name string) slog.Attr   { return slog.String(KeyBackend, name) }
func Extractor(name string) slog.Attr { return slog.String(KeyExtractor, name) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Broken(n int) slog.Attr          { return slog.Int(KeyBroken, n) }
func Subject(s string) slog.Attr      { return slog.String(KeySubject, s) }
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
