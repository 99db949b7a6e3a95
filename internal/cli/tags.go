package cli

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/taggraph/pkg/pipeline"
	tgtable "github.com/matzehuels/taggraph/pkg/table"
	"github.com/matzehuels/taggraph/pkg/tags"
)

// tagsCommand creates the tags command for inspecting the tag vocabulary.
func (c *CLI) tagsCommand() *cobra.Command {
	var (
		opts        pipeline.Options
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List the tag vocabulary of a table with entry counts",
		Long: `List the tag vocabulary of a table with entry counts.

Every level of a slash-delimited tag is listed, parents before children.
The count of a tag is the number of rows whose tag falls under it.

With --interactive, browse the vocabulary and print the entries of the
selected tag.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTags(cmd.Context(), opts, interactive)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "input CSV table (default "+pipeline.DefaultInput+")")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "browse tags interactively")

	return cmd
}

func (c *CLI) runTags(ctx context.Context, opts pipeline.Options, interactive bool) error {
	opts, err := c.resolveOptions(ctx, opts)
	if err != nil {
		return err
	}

	rows, err := tgtable.ReadFile(opts.Input)
	if err != nil {
		return err
	}
	raw := make([]string, len(rows))
	for i, r := range rows {
		raw[i] = r.Tag
	}
	index := tags.NewIndex(raw)
	loggerFromContext(ctx).Debug("indexed tags", "rows", len(rows), "tags", index.Len())

	if !interactive {
		fmt.Println(renderTagTable(index.AllTagsWithCounts()))
		return nil
	}

	p := tea.NewProgram(NewTagListModel(index.AllTagsWithCounts()), tea.WithContext(ctx))
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	fm, ok := finalModel.(TagListModel)
	if !ok || fm.Selected == nil {
		printInfo("No tag selected")
		return nil
	}

	tag := fm.Selected.Tag
	entries := entriesByTag(rows)[tag]
	printSuccess("%s %s", StyleTag.Render(tag),
		StyleDim.Render(fmt.Sprintf("(%d entries, %d rows)", len(entries), index.Count(tag))))
	for _, e := range entries {
		fmt.Println(formatEntry(e))
	}
	return nil
}

// formatEntry renders an entry title followed by its link, if any.
func formatEntry(r tgtable.Row) string {
	line := "  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(r.Name)
	if r.Link != nil {
		line += " " + StyleLink.Render(*r.Link)
	}
	return line
}

// renderTagTable formats counts as a bordered table.
func renderTagTable(counts []tags.Count) string {
	rows := make([][]string, len(counts))
	for i, c := range counts {
		rows[i] = []string{c.Tag, strconv.Itoa(c.N)}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Tag", "Entries").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case col == 1:
				return StyleNumber
			default:
				return StyleTag
			}
		}).
		Render()
}

// entriesByTag maps every tag level to the distinct entries filed under it,
// in row order. An entry is represented by the first row carrying its name.
func entriesByTag(rows []tgtable.Row) map[string][]tgtable.Row {
	first := make(map[string]tgtable.Row, len(rows))
	out := make(map[string][]tgtable.Row)
	for _, r := range rows {
		if _, ok := first[r.Name]; !ok {
			first[r.Name] = r
		}
		for _, t := range tags.Expand(r.Tag) {
			if !slices.ContainsFunc(out[t], func(e tgtable.Row) bool { return e.Name == r.Name }) {
				out[t] = append(out[t], first[r.Name])
			}
		}
	}
	return out
}
