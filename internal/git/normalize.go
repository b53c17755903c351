package git

import (
	"time"
)

// Layouts tried in order when parsing author dates. Queries request strict
// ISO output, but log records have historically arrived in looser shapes.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05 -0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalizer converts raw log records into strict Commits, repairing missing
// or invalid fields. Now is injectable so date repair is testable.
type Normalizer struct {
	Now    func() time.Time
	Notify Notifier
}

func NewNormalizer(notify Notifier) *Normalizer {
	if notify == nil {
		notify = discard
	}
	return &Normalizer{Now: time.Now, Notify: notify}
}

// Normalize maps each record to a Commit. A record too malformed to carry a
// commit is skipped with a diagnostic; one bad record never aborts the batch.
func (n *Normalizer) Normalize(records []RawLogRecord) []Commit {
	commits := make([]Commit, 0, len(records))
	for i, rec := range records {
		if rec.FieldCount < minLogFields {
			n.Notify("skipping malformed log record %d (%d fields)", i, rec.FieldCount)
			continue
		}
		commits = append(commits, n.normalizeRecord(rec))
	}
	return commits
}

func (n *Normalizer) normalizeRecord(rec RawLogRecord) Commit {
	c := Commit{
		Hash:    rec.Hash,
		Author:  rec.Author,
		Message: firstNonEmpty(rec.Message, rec.Subject, rec.Body, NoMessage),
		Files:   []string{},
	}
	if c.Hash == "" {
		c.Hash = UnknownHash
	}
	if c.Author == "" {
		c.Author = UnknownAuthor
	}

	date, ok := parseDate(rec.Date)
	if !ok {
		n.Notify("commit %s has unparseable date %q, substituting current time", c.Hash, rec.Date)
		date = n.Now()
	}
	c.Date = date
	return c
}

// parseDate also converts to local time: author dates arrive with the
// committer's own offset, and the whole pipeline reasons in reporter-local
// calendar days.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil && t.Year() > 1 {
			return t.In(time.Local), true
		}
	}
	return time.Time{}, false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
