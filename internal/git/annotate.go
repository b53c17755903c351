package git

import "context"

// Annotation caps. The per-commit containment fallback costs one git call per
// unresolved commit, so it is bounded explicitly instead of degrading
// silently on large commit sets.
const (
	DefaultScanLimit    = 200
	DefaultContainLimit = 25
)

// Annotator resolves which branch each commit belongs to. Pure enrichment:
// it never removes, reorders or fails a commit set.
type Annotator struct {
	client *Client
	notify Notifier

	// ScanLimit caps each branch's history scan; ContainLimit caps how many
	// unresolved commits get an individual containment query.
	ScanLimit    int
	ContainLimit int
}

func NewAnnotator(client *Client, notify Notifier) *Annotator {
	if notify == nil {
		notify = discard
	}
	return &Annotator{
		client:       client,
		notify:       notify,
		ScanLimit:    DefaultScanLimit,
		ContainLimit: DefaultContainLimit,
	}
}

func isTrunk(branch string) bool {
	return branch == "main" || branch == "master"
}

// Annotate returns the same commits with Branch populated where resolvable.
// Attribution prefers feature branches over trunk: after a merge, trunk
// containing a commit says little about where the work happened.
func (a *Annotator) Annotate(ctx context.Context, commits []Commit) []Commit {
	if len(commits) == 0 {
		return commits
	}

	branches, err := a.client.ListBranches(ctx)
	if err != nil {
		a.notify("branch enumeration failed, leaving commits unannotated: %v", err)
		return commits
	}

	byHash := make(map[string]string)
	for _, branch := range branches {
		hashes, err := a.client.BranchHistory(ctx, branch, a.ScanLimit)
		if err != nil {
			a.notify("history scan for branch %s failed: %v", branch, err)
			continue
		}
		for _, h := range hashes {
			if _, seen := byHash[h]; !seen || !isTrunk(branch) {
				byHash[h] = branch
			}
		}
	}

	annotated := make([]Commit, len(commits))
	fallbacks, capped := 0, 0
	for i, c := range commits {
		annotated[i] = c
		if branch, ok := byHash[c.Hash]; ok {
			annotated[i].Branch = branch
			continue
		}
		if fallbacks >= a.ContainLimit {
			capped++
			continue
		}
		fallbacks++
		containing, err := a.client.BranchesContaining(ctx, c.Hash)
		if err != nil || len(containing) == 0 {
			continue
		}
		annotated[i].Branch = pickContaining(containing)
	}
	if capped > 0 {
		a.notify("branch resolution fallback capped; %d commits left unresolved", capped)
	}
	return annotated
}

// pickContaining prefers a trunk name among containment results; there the
// tie-break runs the other way since the branch-history pass already missed.
func pickContaining(branches []string) string {
	for _, b := range branches {
		if isTrunk(b) {
			return b
		}
	}
	return branches[0]
}
