package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/taggraph/pkg/tags"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// TagListModel - Interactive tag browser
// =============================================================================

// TagListModel is the bubbletea model for browsing the tag vocabulary.
// Pressing enter selects the tag under the cursor and quits.
type TagListModel struct {
	Tags     []tags.Count
	Cursor   int
	Selected *tags.Count
	Height   int
	Offset   int
}

// NewTagListModel creates a new tag list model.
func NewTagListModel(counts []tags.Count) TagListModel {
	return TagListModel{
		Tags:   counts,
		Height: 15,
	}
}

func (m TagListModel) Init() tea.Cmd {
	return nil
}

func (m TagListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Tags)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Tags) == 0 {
				return m, tea.Quit
			}
			sel := m.Tags[m.Cursor]
			m.Selected = &sel
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m TagListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Tag"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ show entries  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Tags))

	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		c := m.Tags[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, indentTag(c.Tag), strconv.Itoa(c.N)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Tag", "Entries").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col == 2 {
				return StyleNumber
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	if len(m.Tags) > 0 {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Tags))))
	} else {
		b.WriteString(listDimStyle.Render("  no tags"))
	}

	return b.String()
}

// indentTag renders a tag path as its last segment, indented by depth.
func indentTag(tag string) string {
	depth := strings.Count(tag, tags.Separator)
	leaf := tag
	if i := strings.LastIndex(tag, tags.Separator); i >= 0 {
		leaf = tag[i+len(tags.Separator):]
	}
	return strings.Repeat("  ", depth) + leaf
}
