package pipeline

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	tgerrors "github.com/matzehuels/taggraph/pkg/errors"
	"github.com/matzehuels/taggraph/pkg/graph"
	"github.com/matzehuels/taggraph/pkg/observability"
)

const sampleCSV = `Name,Tag,Link
Go Tour,lang/go,https://go.dev/tour
Effective Go,lang/go/style,https://go.dev/doc/effective_go
Rust Book,lang/rust,https://doc.rust-lang.org/book
Go Tour,lang/go/intro,https://example.com/duplicate
Notes,,
`

func writeCSV(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func quietRunner() *Runner { return NewRunner(log.New(io.Discard)) }

func TestRun(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		Input:  writeCSV(t, dir, sampleCSV),
		Output: filepath.Join(dir, "out", "graph.json"),
	}

	result, err := quietRunner().Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.Created {
		t.Error("Created = false, want true for a fresh output path")
	}

	// tags: lang, lang/go, lang/go/style, lang/rust, lang/go/intro
	want := graph.Stats{Entries: 4, Tags: 5, TagLinks: 4, EntryLinks: 2 + 3 + 2 + 3}
	if result.Stats.Stats != want {
		t.Errorf("Stats = %+v, want %+v", result.Stats.Stats, want)
	}
	if result.Stats.Rows != 5 {
		t.Errorf("Rows = %d, want 5", result.Stats.Rows)
	}

	doc, err := graph.ReadFile(opts.Output)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(doc.Nodes) != len(result.Document.Nodes) || len(doc.Links) != len(result.Document.Links) {
		t.Error("persisted document differs from result")
	}
	tour, ok := doc.Node(graph.ID("Go Tour"))
	if !ok || tour.Link == nil || *tour.Link != "https://go.dev/tour" {
		t.Errorf("Go Tour should keep its first link: %+v", tour)
	}
	notes, _ := doc.Node(graph.ID("Notes"))
	if notes.Link != nil {
		t.Errorf("Notes.Link = %q, want nil", *notes.Link)
	}
}

func TestRunOverwrites(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "graph.json")
	if err := os.WriteFile(output, []byte(`{"nodes": [{"id": "stale", "type": "[TAG]"}], "links": []}`), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := quietRunner().Run(context.Background(), Options{
		Input:  writeCSV(t, dir, "Name,Tag,Link\nX,A,u1\n"),
		Output: output,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Created {
		t.Error("Created = true, want false for an existing output")
	}

	doc, err := graph.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := doc.Node("stale"); ok {
		t.Error("stale node should be replaced, not merged")
	}
	if len(doc.Nodes) != 2 {
		t.Errorf("nodes = %d, want 2", len(doc.Nodes))
	}
}

func TestRunDeterministic(t *testing.T) {
	dir := t.TempDir()
	input := writeCSV(t, dir, sampleCSV)

	var outputs [][]byte
	for _, name := range []string{"a.json", "b.json"} {
		out := filepath.Join(dir, name)
		if _, err := quietRunner().Run(context.Background(), Options{Input: input, Output: out}); err != nil {
			t.Fatalf("Run: %v", err)
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		outputs = append(outputs, data)
	}
	if !bytes.Equal(outputs[0], outputs[1]) {
		t.Error("repeated runs should produce byte-identical output")
	}
}

func TestRunDryRun(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "graph.json")
	result, err := quietRunner().Run(context.Background(), Options{
		Input:  writeCSV(t, dir, sampleCSV),
		Output: output,
		DryRun: true,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Document == nil {
		t.Fatal("Document = nil")
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Error("dry run should not create the output")
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		opts     Options
		wantCode tgerrors.Code
	}{
		{
			name:     "MissingInput",
			opts:     Options{Input: filepath.Join(dir, "missing.csv"), Output: filepath.Join(dir, "o1.json")},
			wantCode: tgerrors.ErrCodeFileNotFound,
		},
		{
			name:     "MissingColumn",
			opts:     Options{Input: writeCSV(t, t.TempDir(), "Name,Link\nX,u\n"), Output: filepath.Join(dir, "o2.json")},
			wantCode: tgerrors.ErrCodeMissingColumn,
		},
		{
			name:     "BadOwner",
			opts:     Options{Owner: "two words", Output: filepath.Join(dir, "o3.json")},
			wantCode: tgerrors.ErrCodeInvalidConfig,
		},
		{
			name:     "SamePaths",
			opts:     Options{Input: "x.csv", Output: "x.csv"},
			wantCode: tgerrors.ErrCodeInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := quietRunner().Run(context.Background(), tt.opts)
			if !tgerrors.Is(err, tt.wantCode) {
				t.Errorf("Run() code = %s, want %s (%v)", tgerrors.GetCode(err), tt.wantCode, err)
			}
		})
	}
}

func TestRunRejectsOutputOverInput(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	input := writeCSV(t, dir, sampleCSV)
	link := filepath.Join(dir, "alias.csv")
	if err := os.Symlink(input, link); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name          string
		input, output string
	}{
		{"DotPrefix", "data.csv", "./data.csv"},
		{"RelativeVsAbsolute", "data.csv", input},
		{"Unclean", "data.csv", "sub/../data.csv"},
		{"Symlink", input, link},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := quietRunner().Run(context.Background(), Options{Input: tt.input, Output: tt.output})
			if !tgerrors.Is(err, tgerrors.ErrCodeInvalidConfig) {
				t.Errorf("Run() code = %s, want %s (%v)", tgerrors.GetCode(err), tgerrors.ErrCodeInvalidConfig, err)
			}
			data, err := os.ReadFile(input)
			if err != nil {
				t.Fatal(err)
			}
			if string(data) != sampleCSV {
				t.Fatalf("input table was overwritten: %q", data)
			}
		})
	}
}

func TestRunCanceled(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := quietRunner().Run(ctx, Options{
		Input:  writeCSV(t, dir, sampleCSV),
		Output: filepath.Join(dir, "graph.json"),
	})
	if err != context.Canceled {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Input != DefaultInput || opts.Output != DefaultOutput || opts.Owner != graph.DefaultOwner {
		t.Errorf("defaults not applied: %+v", opts)
	}
}

type recordingHooks struct {
	started []string
	stats   []observability.BuildStats
	errs    []error
}

func (h *recordingHooks) OnBuildStart(_ context.Context, input string) {
	h.started = append(h.started, input)
}

func (h *recordingHooks) OnBuildComplete(_ context.Context, _ string, s observability.BuildStats, _ time.Duration, err error) {
	h.stats = append(h.stats, s)
	h.errs = append(h.errs, err)
}

func TestRunHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	t.Cleanup(observability.Reset)

	dir := t.TempDir()
	input := writeCSV(t, dir, sampleCSV)
	if _, err := quietRunner().Run(context.Background(), Options{Input: input, Output: filepath.Join(dir, "g.json")}); err != nil {
		t.Fatal(err)
	}
	_, missingErr := quietRunner().Run(context.Background(), Options{Input: filepath.Join(dir, "nope.csv"), Output: filepath.Join(dir, "g.json")})

	if len(h.started) != 2 || h.started[0] != input {
		t.Fatalf("started = %v, want two runs starting with %s", h.started, input)
	}
	if got := h.stats[0]; got.Rows != 5 || got.Nodes != 9 || got.Links != 14 {
		t.Errorf("stats = %+v, want 5 rows, 9 nodes, 14 links", got)
	}
	if h.errs[0] != nil || h.errs[1] != missingErr {
		t.Errorf("errs = %v, want [nil %v]", h.errs, missingErr)
	}
}
