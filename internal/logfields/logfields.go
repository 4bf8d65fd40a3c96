package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyNamespace  = "namespace"
	KeyPage       = "page"
	KeyPages      = "pages"
	KeyFiles      = "files"
	KeyModule     = "module"
	KeyOutputDir  = "output_dir"
	KeyURL        = "url"
	KeyRef        = "ref"
	KeyDigest     = "digest"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Namespace(ns string) slog.Attr   { return slog.String(KeyNamespace, ns) }
func Page(n int) slog.Attr            { return slog.Int(KeyPage, n) }
func Pages(n int) slog.Attr           { return slog.Int(KeyPages, n) }
func Files(n int) slog.Attr           { return slog.Int(KeyFiles, n) }
func Module(m string) slog.Attr       { return slog.String(KeyModule, m) }
func OutputDir(d string) slog.Attr    { return slog.String(KeyOutputDir, d) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Ref(r string) slog.Attr          { return slog.String(KeyRef, r) }
func Digest(d string) slog.Attr       { return slog.String(KeyDigest, d) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
