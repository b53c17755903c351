package git

import "time"

// Sentinel values substituted by the normalizer when a log record is missing
// a field. They are visible in rendered reports, so keep them human-readable.
const (
	UnknownHash   = "unknown"
	UnknownAuthor = "Unknown"
	NoMessage     = "[No message]"
)

// Commit is the normalized, immutable unit of history the reporting pipeline
// works with. Branch stays empty until the annotator resolves it. Files is
// reserved; log queries do not request per-commit file lists.
type Commit struct {
	Hash    string
	Message string
	Author  string
	Date    time.Time
	Branch  string
	Files   []string
}

// RawLogRecord is one loosely-shaped record parsed from git log output before
// normalization. Message carries the subject placeholder, Subject the first
// body line and Body the raw remainder; the normalizer tries them in that
// order because structured log output has mis-populated the subject under
// some message-content conditions.
type RawLogRecord struct {
	Hash    string
	Author  string
	Email   string
	Date    string
	Message string
	Subject string
	Body    string

	// FieldCount is how many separator-delimited fields the record actually
	// carried. Records below the minimum are skipped by the normalizer.
	FieldCount int
}

// Notifier receives user-visible diagnostics (data-quality events, fallback
// notices). Core types never print directly; the CLI injects one.
type Notifier func(format string, args ...any)

func discard(string, ...any) {}
