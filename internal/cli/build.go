package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/taggraph/pkg/graph"
	"github.com/matzehuels/taggraph/pkg/pipeline"
)

// buildCommand creates the build command, which runs the full conversion.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		opts   pipeline.Options
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the graph document from a tagged table",
		Long: `Build the graph document from a tagged table.

The input table must have Name, Tag and Link columns. The output document is
created if missing and fully overwritten otherwise. With --stdout the
document is written to standard output and the output path is not touched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if stdout {
				return c.runBuildTo(cmd.Context(), opts, cmd.OutOrStdout())
			}
			return c.runBuild(cmd.Context(), opts, true)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "input CSV table (default "+pipeline.DefaultInput+")")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output JSON document (default "+pipeline.DefaultOutput+")")
	cmd.Flags().StringVar(&opts.Owner, "owner", "", "owner recorded on every node (default \""+graph.DefaultOwner+"\")")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "write the document to stdout instead of the output file")

	return cmd
}

// runBuild resolves options, runs the pipeline and reports the result.
// When detailed is false only the one-line confirmation is printed.
func (c *CLI) runBuild(ctx context.Context, opts pipeline.Options, detailed bool) error {
	opts, err := c.resolveOptions(ctx, opts)
	if err != nil {
		return err
	}

	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	result, err := pipeline.NewRunner(logger).Run(ctx, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Built %d nodes from %d rows", len(result.Document.Nodes), result.Stats.Rows))

	printSuccess("Graph generated and saved to %s", opts.Output)
	if detailed {
		s := result.Stats
		printStats(
			fmt.Sprintf("%d entries", s.Entries),
			fmt.Sprintf("%d tags", s.Tags),
			fmt.Sprintf("%d links", s.EntryLinks+s.TagLinks),
		)
	}
	return nil
}

// runBuildTo builds without touching the output path and writes the document to w.
func (c *CLI) runBuildTo(ctx context.Context, opts pipeline.Options, w io.Writer) error {
	opts.DryRun = true
	opts, err := c.resolveOptions(ctx, opts)
	if err != nil {
		return err
	}

	result, err := pipeline.NewRunner(loggerFromContext(ctx)).Run(ctx, opts)
	if err != nil {
		return err
	}
	return graph.Write(result.Document, w)
}

// initCommand creates the init command, which only creates an empty document.
func (c *CLI) initCommand() *cobra.Command {
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an empty graph document if none exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.resolveOptions(cmd.Context(), opts)
			if err != nil {
				return err
			}
			created, err := graph.Initialize(opts.Output)
			if err != nil {
				return err
			}
			if created {
				printSuccess("Created empty graph")
			} else {
				printInfo("Graph already exists, left unchanged")
			}
			printFile(opts.Output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output JSON document (default "+pipeline.DefaultOutput+")")

	return cmd
}

// openOutput creates path for writing, or returns stdout when path is "-".
func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
