package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/c4dgml/pkg/dgml"
	"github.com/matzehuels/c4dgml/pkg/pipeline"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		viewsStr    string
		noCache     bool
		interactive bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "inspect [workspace]",
		Short: "Show the projected nodes and their styles",
		Long: `Show the projected nodes and their styles.

Prints a table with one row per DGML node: its category chain, whether it is
an expanded group, and the setters of the style resolved for it. With
--interactive the nodes open in a browser with links and descriptions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			applyConfig(cmd, cfg, &opts)
			if cmd.Flags().Changed("views") {
				opts.Views = parseList(viewsStr)
			}
			opts.Path = args[0]
			opts.Formats = []string{pipeline.FormatJSON}
			return c.runInspect(cmd, opts, noCache, interactive)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse nodes interactively")
	addProjectionFlags(cmd, &opts, &viewsStr)

	return cmd
}

func (c *CLI) runInspect(cmd *cobra.Command, opts pipeline.Options, noCache, interactive bool) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := c.execute(ctx, cmd, runner, opts, fmt.Sprintf("Projecting %s...", opts.Path))
	if err != nil {
		return err
	}

	if interactive {
		_, err := tea.NewProgram(NewNodeBrowserModel(result.Graph), tea.WithContext(ctx)).Run()
		return err
	}

	printSummary(cmd.OutOrStdout(), result.Graph)
	return nil
}

// printSummary prints the graph counts followed by the node table.
func printSummary(w io.Writer, g dgml.DirectedGraph) {
	stats := g.Stats()
	fmt.Fprintln(w, StyleTitle.Render(g.Title))
	printKeyValue(w, "Nodes", strconv.Itoa(stats.Nodes))
	printKeyValue(w, "Links", strconv.Itoa(stats.Links))
	printKeyValue(w, "Groups", strconv.Itoa(stats.Groups))
	printKeyValue(w, "Categories", strconv.Itoa(stats.Categories))
	printKeyValue(w, "Styles", strconv.Itoa(stats.Styles))
	fmt.Fprintln(w)
	fmt.Fprintln(w, nodeTable(g).Render())
}

// nodeTable renders one row per node.
func nodeTable(g dgml.DirectedGraph) *table.Table {
	rows := make([][]string, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		group := ""
		if n.IsExpanded() {
			group = "expanded"
		}
		rows = append(rows, []string{n.ID, n.DisplayLabel(), strings.Join(n.CategoryIDs(), " › "), group, styleSummary(g, n)})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Label", "Categories", "Group", "Style").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == -1: // header
				return styleHeader.Padding(0, 1)
			case col == 0 || col == 2:
				return base.Foreground(colorGray)
			default:
				return base
			}
		})
}

// styleSummary formats the setters of the style applied to n.
func styleSummary(g dgml.DirectedGraph, n dgml.Node) string {
	s, ok := g.StyleFor(n)
	if !ok {
		return "—"
	}
	parts := make([]string, 0, len(s.Setters)+1)
	parts = append(parts, "@"+s.GroupLabel)
	for _, st := range s.Setters {
		v := st.Value
		if st.Property == dgml.PropertyIcon {
			v = v[strings.LastIndex(v, "/")+1:]
		}
		parts = append(parts, st.Property+"="+v)
	}
	return strings.Join(parts, " ")
}
