package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/c4dgml/pkg/dgml"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailBoxStyle    = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// =============================================================================
// NodeBrowserModel - Interactive node browser
// =============================================================================

// NodeBrowserModel is the bubbletea model of the inspect --interactive view:
// a scrolling node list with a detail pane for the selected node.
type NodeBrowserModel struct {
	Graph  dgml.DirectedGraph
	Cursor int
	Height int
	Offset int
}

// NewNodeBrowserModel creates a browser over the nodes of g.
func NewNodeBrowserModel(g dgml.DirectedGraph) NodeBrowserModel {
	return NodeBrowserModel{Graph: g, Height: 15}
}

func (m NodeBrowserModel) Init() tea.Cmd {
	return nil
}

func (m NodeBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Graph.Nodes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			if n := len(m.Graph.Nodes); n > 0 {
				m.Cursor = n - 1
				m.Offset = max(0, n-m.Height)
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-14, 5)
	}
	return m, nil
}

func (m NodeBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Graph.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	if len(m.Graph.Nodes) == 0 {
		b.WriteString(listDimStyle.Render("  no nodes"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Graph.Nodes))
	for i := m.Offset; i < end; i++ {
		n := m.Graph.Nodes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-28s %s", cursor, n.DisplayLabel(), listDimStyle.Render(n.Category))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(detailBoxStyle.Render(m.detail(m.Graph.Nodes[m.Cursor])))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Graph.Nodes))))

	return b.String()
}

// detail describes n with its categories, style and links.
func (m NodeBrowserModel) detail(n dgml.Node) string {
	var lines []string
	add := func(key, value string) {
		if value != "" {
			lines = append(lines, styleKey.Render(key)+" "+value)
		}
	}

	add("Id", n.ID)
	add("Description", n.Description)
	if n.Reference != "" {
		add("Reference", StyleLink.Render(n.Reference))
	}
	add("Categories", strings.Join(n.CategoryIDs(), " › "))
	if n.IsExpanded() {
		add("Group", n.Group)
	}
	add("Style", styleSummary(m.Graph, n))

	for _, l := range m.Graph.Links {
		label := l.Label
		if label == "" {
			label = listDimStyle.Render("(unlabeled)")
		}
		switch n.ID {
		case l.Source:
			add("→ "+l.Target, label)
		case l.Target:
			add("← "+l.Source, label)
		}
	}
	return strings.Join(lines, "\n")
}
