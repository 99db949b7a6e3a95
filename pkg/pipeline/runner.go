package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/taggraph/pkg/builder"
	tgerrors "github.com/matzehuels/taggraph/pkg/errors"
	"github.com/matzehuels/taggraph/pkg/graph"
	"github.com/matzehuels/taggraph/pkg/observability"
	"github.com/matzehuels/taggraph/pkg/table"
	"github.com/matzehuels/taggraph/pkg/tags"
)

// Runner executes pipeline runs. It holds no per-run state.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Run executes initialize → read → build → persist.
// Cancellation of ctx is checked between stages; a stage in progress is not interrupted.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, opts.Input)
	start := time.Now()

	result, err := r.run(ctx, opts, start)

	var stats observability.BuildStats
	if result != nil {
		stats = observability.BuildStats{
			Rows:  result.Stats.Rows,
			Nodes: len(result.Document.Nodes),
			Links: len(result.Document.Links),
		}
	}
	hooks.OnBuildComplete(ctx, opts.Input, stats, time.Since(start), err)
	if err != nil {
		r.Logger.Debug("build failed", "input", opts.Input, "code", tgerrors.GetCode(err))
	}
	return result, err
}

func (r *Runner) run(ctx context.Context, opts Options, start time.Time) (*Result, error) {
	result := &Result{}

	// Stage 1: Initialize
	if !opts.DryRun {
		created, err := graph.Initialize(opts.Output)
		if err != nil {
			return nil, fmt.Errorf("initialize: %w", err)
		}
		result.Created = created
		if created {
			r.Logger.Debug("created empty document", "path", opts.Output)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Read
	rows, err := table.ReadFile(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	r.Logger.Debug("read table", "path", opts.Input, "rows", len(rows))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Build
	doc, err := r.Build(rows, opts.Owner)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Document = doc
	result.Stats.Stats = doc.Stats()
	result.Stats.Rows = len(rows)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 4: Persist
	if !opts.DryRun {
		if err := graph.WriteFile(doc, opts.Output); err != nil {
			return nil, fmt.Errorf("persist: %w", err)
		}
	}
	result.Stats.Duration = time.Since(start)

	r.Logger.Info("built graph",
		"rows", result.Stats.Rows,
		"entries", result.Stats.Entries,
		"tags", result.Stats.Tags,
		"links", result.Stats.EntryLinks+result.Stats.TagLinks,
		"duration", result.Stats.Duration.Round(time.Millisecond))

	return result, nil
}

// Build indexes the tags of rows and builds the document.
func (r *Runner) Build(rows []table.Row, owner string) (*graph.Document, error) {
	raw := make([]string, len(rows))
	for i, row := range rows {
		raw[i] = row.Tag
	}
	return builder.New(owner, r.Logger).Build(rows, tags.NewIndex(raw))
}
