package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/c4dgml/pkg/dgml"
)

func browserGraph() dgml.DirectedGraph {
	return dgml.DirectedGraph{
		Title: "Shop",
		Nodes: []dgml.Node{
			{ID: "1", Label: "Customer", Category: "Person", CategoryRefs: dgml.Refs("Person", "Element")},
			{ID: "3", Label: "API", Category: "2", Group: dgml.GroupExpanded, CategoryRefs: dgml.Refs("2", "Container")},
			{ID: "5", Label: "Orders", Description: "Takes orders", Category: "3", CategoryRefs: dgml.Refs("3", "Component")},
		},
		Links: []dgml.Link{{Source: "1", Target: "5", Label: "Uses"}},
		Styles: []dgml.Style{{
			TargetType: dgml.TargetTypeNode,
			GroupLabel: "3",
			Conditions: []dgml.Condition{dgml.HasCategory("3")},
			Setters:    []dgml.Setter{{Property: dgml.PropertyBackground, Value: "#85bbf0"}},
		}},
	}
}

func press(m tea.Model, key string) tea.Model {
	var msg tea.KeyMsg
	switch key {
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	m, _ = m.Update(msg)
	return m
}

func TestNodeBrowserNavigation(t *testing.T) {
	var m tea.Model = NewNodeBrowserModel(browserGraph())

	m = press(m, "down")
	m = press(m, "down")
	m = press(m, "down") // clamps at the last node
	if got := m.(NodeBrowserModel).Cursor; got != 2 {
		t.Errorf("Cursor = %d, want 2", got)
	}

	m = press(m, "up")
	if got := m.(NodeBrowserModel).Cursor; got != 1 {
		t.Errorf("Cursor = %d, want 1", got)
	}

	m = press(m, "g")
	if got := m.(NodeBrowserModel).Cursor; got != 0 {
		t.Errorf("Cursor after g = %d, want 0", got)
	}
	m = press(m, "G")
	if got := m.(NodeBrowserModel).Cursor; got != 2 {
		t.Errorf("Cursor after G = %d, want 2", got)
	}
}

func TestNodeBrowserScroll(t *testing.T) {
	m := NewNodeBrowserModel(browserGraph())
	m.Height = 1

	var tm tea.Model = m
	tm = press(tm, "down")
	tm = press(tm, "down")
	if got := tm.(NodeBrowserModel).Offset; got != 2 {
		t.Errorf("Offset = %d, want 2", got)
	}
}

func TestNodeBrowserQuit(t *testing.T) {
	_, cmd := NewNodeBrowserModel(browserGraph()).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestNodeBrowserView(t *testing.T) {
	var m tea.Model = NewNodeBrowserModel(browserGraph())
	m = press(m, "down")
	m = press(m, "down")

	view := m.View()
	for _, want := range []string{"Shop", "Orders", "Takes orders", "@3", "Background=#85bbf0", "← 1", "[3/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestNodeBrowserEmpty(t *testing.T) {
	view := NewNodeBrowserModel(dgml.DirectedGraph{Title: "Empty"}).View()
	if !strings.Contains(view, "no nodes") {
		t.Errorf("View() = %q", view)
	}
}

func TestStyleSummary(t *testing.T) {
	g := browserGraph()
	if got := styleSummary(g, g.Nodes[2]); got != "@3 Background=#85bbf0" {
		t.Errorf("styleSummary() = %q", got)
	}
	if got := styleSummary(g, g.Nodes[0]); got != "—" {
		t.Errorf("styleSummary() without style = %q", got)
	}
}
