package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/taggraph/pkg/cache"
	tgerrors "github.com/matzehuels/taggraph/pkg/errors"
	"github.com/matzehuels/taggraph/pkg/graph"
	"github.com/matzehuels/taggraph/pkg/observability"
	"github.com/matzehuels/taggraph/pkg/pipeline"
	"github.com/matzehuels/taggraph/pkg/render/nodelink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	input    string // graph document (default: configured output)
	output   string // output file, "-" for stdout (default: input with format extension)
	format   string // "dot" or "svg"
	detailed bool   // add owner and link to node labels
	noCache  bool   // bypass the render cache
}

// renderCommand creates the render command for drawing a built document.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: nodelink.FormatSVG}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a graph document as a node-link diagram",
		Long: `Render a graph document as a node-link diagram.

Tags are drawn as ellipses and entries as rounded boxes. Entry links are
solid and point at each level of the entry's tag; tag links are dashed and
point at the parent tag. Use --format dot to emit Graphviz source instead
of SVG.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := tgerrors.ValidateFormat(opts.format, nodelink.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "graph document (default "+pipeline.DefaultOutput+")")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, - for stdout (default: input with format extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show owner and link in node labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	if opts.input == "" {
		resolved, err := c.resolveOptions(ctx, pipeline.Options{})
		if err != nil {
			return err
		}
		opts.input = resolved.Output
	}

	doc, err := graph.ReadFile(opts.input)
	if err != nil {
		return err
	}
	logger.Infof("Loaded graph: %d nodes, %d links", len(doc.Nodes), len(doc.Links))

	store := newCache(opts.noCache)
	defer store.Close()

	data, err := renderDocument(ctx, store, doc, opts)
	if err != nil {
		return err
	}
	logger.Debugf("Generated %s: %d bytes", opts.format, len(data))

	path := opts.output
	if path == "" {
		path = outputPath(opts.input, opts.format)
	}

	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return err
	}
	if path != "-" {
		printSuccess("Rendered %s", opts.format)
		printFile(path)
	}
	return nil
}

// renderDocument dispatches on the requested format. SVG output is served
// from store when the same DOT source was rendered before.
func renderDocument(ctx context.Context, store cache.Cache, doc *graph.Document, opts renderOpts) ([]byte, error) {
	logger := loggerFromContext(ctx)

	dot := nodelink.ToDOT(doc, nodelink.Options{Detailed: opts.detailed})
	if opts.format == nodelink.FormatDOT {
		return []byte(dot), nil
	}

	hooks := observability.Cache()
	key := cache.RenderKey(opts.format, opts.detailed, dot)
	if data, hit, err := store.Get(ctx, key); err != nil {
		logger.Warn("cache read failed", "err", err)
	} else if hit {
		logger.Debug("render cache hit", "key", key)
		hooks.OnCacheHit(ctx, opts.format)
		return data, nil
	}
	hooks.OnCacheMiss(ctx, opts.format)

	spinner := newSpinnerWithContext(ctx, "Rendering SVG...")
	spinner.Start()
	svg, err := nodelink.RenderSVG(ctx, dot)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return nil, err
	}
	spinner.Stop()

	if err := store.Set(ctx, key, svg, cache.DefaultTTL); err != nil {
		logger.Warn("cache write failed", "err", err)
	} else {
		hooks.OnCacheSet(ctx, opts.format, len(svg))
	}
	return svg, nil
}

// outputPath swaps the extension of input for format.
func outputPath(input, format string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
}
