package git

import (
	"context"
	"fmt"
	"time"

	"github.com/aayushsolanki40/report-pilot/internal/daterange"
)

// Query caps used when no configuration overrides them.
const (
	DefaultRelaxedLimit = 50
	DefaultBroadLimit   = 100
)

// Result is one retrieval's outcome. UsedFallback is set when the broad
// no-date-filter query recovered commits the tight query missed, so the
// caller can surface a one-time notice.
type Result struct {
	Commits      []Commit
	UsedFallback bool
}

// Retriever drives log queries with a primary strategy and fallbacks.
type Retriever struct {
	client *Client
	norm   *Normalizer
	notify Notifier

	// RelaxedLimit caps the all-branches query used for a same-instant range;
	// BroadLimit caps the zero-result fallback query.
	RelaxedLimit int
	BroadLimit   int
}

func NewRetriever(client *Client, notify Notifier) *Retriever {
	if notify == nil {
		notify = discard
	}
	return &Retriever{
		client:       client,
		norm:         NewNormalizer(notify),
		notify:       notify,
		RelaxedLimit: DefaultRelaxedLimit,
		BroadLimit:   DefaultBroadLimit,
	}
}

// Commits retrieves and normalizes commits for the range, optionally filtered
// by author. A missing repository or an exhausted query is not an error: the
// result is empty and a diagnostic goes through the notifier.
func (r *Retriever) Commits(ctx context.Context, rng daterange.Range, author string) (Result, error) {
	if !IsRepository(r.client.Path()) {
		r.notify("no git repository found at %s", r.client.Path())
		return Result{}, nil
	}

	// A same-instant range signals "show me something recent": after/before
	// filters are brittle around timezone and time-of-day boundaries, so a
	// degenerate range widens the net instead of filtering tightly.
	if rng.From.Equal(rng.To) {
		records, err := r.client.Log(ctx, LogOptions{AllBranches: true, MaxCount: r.RelaxedLimit, Author: author})
		if err != nil {
			return Result{}, fmt.Errorf("relaxed log query failed: %w", err)
		}
		return Result{Commits: r.norm.Normalize(records)}, nil
	}

	records, err := r.client.Log(ctx, LogOptions{After: rng.From, Before: rng.To, Author: author})
	if err != nil {
		return Result{}, fmt.Errorf("log query failed: %w", err)
	}
	commits := r.norm.Normalize(records)
	if len(commits) > 0 {
		return Result{Commits: commits}, nil
	}

	// The tool's own date filter can miss boundary-day commits. Re-query
	// broadly and filter by calendar day on our side.
	broad, err := r.client.Log(ctx, LogOptions{AllBranches: true, MaxCount: r.BroadLimit, Author: author})
	if err != nil {
		return Result{}, fmt.Errorf("broad log query failed: %w", err)
	}
	recovered := filterByDay(r.norm.Normalize(broad), rng)
	if len(recovered) > 0 {
		r.notify("date-bounded query returned nothing; recovered %d commits from recent history", len(recovered))
		return Result{Commits: recovered, UsedFallback: true}, nil
	}
	return Result{}, nil
}

// filterByDay keeps commits whose calendar day falls within the range,
// inclusive of both boundary days regardless of time of day. Days are
// compared in the range's location, so a commit authored under a foreign
// offset still counts toward the boundary day it lands on locally.
func filterByDay(commits []Commit, rng daterange.Range) []Commit {
	loc := rng.From.Location()
	fromDay := dayOf(rng.From)
	toDay := dayOf(rng.To.In(loc))
	var kept []Commit
	for _, c := range commits {
		day := dayOf(c.Date.In(loc))
		if day.Equal(fromDay) || day.Equal(toDay) || (day.After(fromDay) && day.Before(toDay)) {
			kept = append(kept, c)
		}
	}
	return kept
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
