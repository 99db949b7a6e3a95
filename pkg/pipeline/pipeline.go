// Package pipeline runs the complete table → graph conversion.
//
// The pipeline has four stages, each of which may also be run on its own
// through the packages it delegates to:
//
//  1. Initialize: create an empty document at the output path if absent ([graph.Initialize])
//  2. Read: load the source table ([table.ReadFile])
//  3. Build: index tags and construct nodes and links ([builder.Builder])
//  4. Persist: overwrite the output with the new document ([graph.WriteFile])
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Run(ctx, pipeline.Options{
//	    Input:  "data.csv",
//	    Output: "output_graph.json",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Stats.Entries, "entries")
package pipeline

import (
	"os"
	"path/filepath"
	"time"

	tgerrors "github.com/matzehuels/taggraph/pkg/errors"
	"github.com/matzehuels/taggraph/pkg/graph"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultInput is the source table read when no input is configured.
	DefaultInput = "./data.csv"

	// DefaultOutput is the document path written when no output is configured.
	DefaultOutput = "./output_graph.json"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	Input  string `toml:"input"`
	Output string `toml:"output"`
	Owner  string `toml:"owner"`

	// DryRun builds the document without touching the output path.
	DryRun bool `toml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults fills empty fields with defaults and validates the result.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" {
		o.Input = DefaultInput
	}
	if o.Output == "" {
		o.Output = DefaultOutput
	}
	if o.Owner == "" {
		o.Owner = graph.DefaultOwner
	}
	if err := tgerrors.ValidateOwner(o.Owner); err != nil {
		return err
	}
	if samePath(o.Input, o.Output) {
		return tgerrors.New(tgerrors.ErrCodeInvalidConfig, "input and output must differ: %s", o.Input)
	}
	o.validated = true
	return nil
}

// samePath reports whether a and b name the same file, after resolving
// relative paths and, when both exist, following links.
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && absA == absB {
		return true
	}
	fa, errA := os.Stat(a)
	fb, errB := os.Stat(b)
	return errA == nil && errB == nil && os.SameFile(fa, fb)
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the built graph.
	Document *graph.Document

	// Created reports whether the initialize stage created the output file.
	Created bool

	// Stats contains counts and timing.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	graph.Stats
	Rows     int
	Duration time.Duration
}
