package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/aayushsolanki40/report-pilot/internal/daterange"
	"github.com/aayushsolanki40/report-pilot/internal/git"
	"github.com/aayushsolanki40/report-pilot/internal/llm"
)

// ErrInProgress is returned when a generation request arrives while another
// is still running. Requests are rejected, never queued.
var ErrInProgress = errors.New("report generation already in progress")

// llmTimeout bounds the single model call per report.
const llmTimeout = 60 * time.Second

// Mode selects how the report is rendered.
type Mode int

const (
	ModeStructured Mode = iota
	ModePlain
	ModeAI
)

// Options parameterize one generation.
type Options struct {
	Range    daterange.Range
	Author   string
	Mode     Mode
	Annotate bool
}

// Generator drives the full pipeline: retrieve, annotate, classify, render.
// All collaborators are injected; the generator holds no ambient state
// beyond the in-flight guard.
type Generator struct {
	retriever *git.Retriever
	annotator *git.Annotator
	renderer  *Renderer
	client    llm.Client
	notify    git.Notifier

	inFlight atomic.Bool
}

func NewGenerator(retriever *git.Retriever, annotator *git.Annotator, renderer *Renderer, client llm.Client, notify git.Notifier) *Generator {
	if notify == nil {
		notify = func(string, ...any) {}
	}
	return &Generator{
		retriever: retriever,
		annotator: annotator,
		renderer:  renderer,
		client:    client,
		notify:    notify,
	}
}

// Generate produces the Markdown report for the options. Retrieval failures
// degrade to the no-commits sentence; an AI failure degrades to the local
// structured report with the error inlined. Only a concurrent invocation is
// an error the caller must handle.
func (g *Generator) Generate(ctx context.Context, opts Options) (string, error) {
	if !g.inFlight.CompareAndSwap(false, true) {
		return "", ErrInProgress
	}
	defer g.inFlight.Store(false)

	runID := uuid.NewString()[:8]
	g.notify("generation %s: period %s to %s", runID,
		opts.Range.From.Format(time.DateOnly), opts.Range.To.Format(time.DateOnly))

	result, err := g.retriever.Commits(ctx, opts.Range, opts.Author)
	if err != nil {
		g.notify("generation %s: retrieval failed: %v", runID, err)
		return NoCommitsSentence, nil
	}
	if result.UsedFallback {
		g.notify("generation %s: used broad-query fallback", runID)
	}

	commits := result.Commits
	if opts.Annotate && g.annotator != nil {
		commits = g.annotator.Annotate(ctx, commits)
	}

	switch opts.Mode {
	case ModePlain:
		return g.renderer.Plain(commits), nil
	case ModeAI:
		return g.generateAI(ctx, runID, commits), nil
	default:
		return g.renderer.Structured(commits), nil
	}
}

// generateAI asks the model for the report and falls back to the local
// structured rendering, with the failure inlined and the raw commit list
// appended, so a dead endpoint never costs the user their report.
func (g *Generator) generateAI(ctx context.Context, runID string, commits []git.Commit) string {
	if len(commits) == 0 {
		return NoCommitsSentence
	}
	if g.client == nil {
		return g.fallbackReport(commits, errors.New("no AI provider configured"))
	}

	ctx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	text, err := g.client.Complete(ctx, g.renderer.Prompt(commits))
	if err != nil {
		g.notify("generation %s: AI report failed: %v", runID, err)
		return g.fallbackReport(commits, err)
	}
	return text
}

func (g *Generator) fallbackReport(commits []git.Commit, cause error) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("> **Note:** AI report unavailable (%v). Showing a locally generated report.\n\n", cause))
	sb.WriteString(g.renderer.Structured(commits))
	sb.WriteString("\n---\n\n## All Commits\n\n")
	for _, c := range commits {
		sb.WriteString(fmt.Sprintf("- %q by %s (`%s`)\n", c.Message, c.Author, c.Hash))
	}
	return sb.String()
}
