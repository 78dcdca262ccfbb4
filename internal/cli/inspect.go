package cli

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/assetgraph/pkg/asset"
	"github.com/matzehuels/assetgraph/pkg/relgraph"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	paneStyle         = lipgloss.NewStyle().Padding(0, 2)
)

// inspectCommand creates the inspect command, an interactive browser over
// the assets of a portfolio and their relationships.
func (c *CLI) inspectCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "inspect [portfolio]",
		Short: "Browse assets and relationships interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := flags.pipelineOptions(cfg, args[0])
			opts.Logger = loggerFromContext(cmd.Context())
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			nw, err := loadAndDiscover(cmd, pipelineRunnerNoCache(opts), opts)
			if err != nil {
				return err
			}
			if nw.Graph().Len() == 0 {
				printWarning("Portfolio has no assets")
				return nil
			}

			p := tea.NewProgram(NewAssetListModel(nw.Graph()), tea.WithContext(cmd.Context()), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	flags.register(cmd)
	return cmd
}

// =============================================================================
// AssetListModel - Interactive asset browser
// =============================================================================

// AssetListModel is the bubbletea model for browsing assets. The left pane
// lists assets; the right pane shows the selected asset's attributes and
// its outgoing relationships.
type AssetListModel struct {
	Graph  *relgraph.Graph
	Assets []asset.Asset
	Cursor int
	Height int
	Offset int
}

// NewAssetListModel creates a browser over g in insertion order.
func NewAssetListModel(g *relgraph.Graph) AssetListModel {
	return AssetListModel{
		Graph:  g,
		Assets: g.Assets(),
		Height: 15,
	}
}

func (m AssetListModel) Init() tea.Cmd {
	return nil
}

func (m AssetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Assets)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			m.Cursor = len(m.Assets) - 1
			m.Offset = max(0, m.Cursor-m.Height+1)
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
		if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m, nil
}

func (m AssetListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Assets"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.listView(), paneStyle.Render(m.detailView())))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Assets))))

	return b.String()
}

func (m AssetListModel) listView() string {
	var b strings.Builder
	end := min(m.Offset+m.Height, len(m.Assets))
	for i := m.Offset; i < end; i++ {
		a := m.Assets[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-10s %s", cursor, a.ID(), listDimStyle.Render(string(a.Class())))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m AssetListModel) detailView() string {
	if len(m.Assets) == 0 {
		return listDimStyle.Render("no assets")
	}
	a := m.Assets[m.Cursor]

	var b strings.Builder
	b.WriteString(StyleHighlight.Render(a.Name()))
	b.WriteString(listDimStyle.Render("  " + a.ID()))
	b.WriteString("\n")

	attrs := a.DisplayAttributes()
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		fmt.Fprintf(&b, "%s %v\n", listDimStyle.Render(fmt.Sprintf("%-14s", k)), attrs[k])
	}
	b.WriteString("\n")

	rels, err := m.Graph.RelationshipsFor(a.ID())
	if err != nil || len(rels) == 0 {
		b.WriteString(listDimStyle.Render("no outgoing relationships"))
		return b.String()
	}
	b.WriteString(relationshipTable(rels))
	return b.String()
}

// relationshipTable renders outgoing relationships, strongest first.
func relationshipTable(rels []relgraph.Relationship) string {
	sorted := slices.Clone(rels)
	slices.SortStableFunc(sorted, func(x, y relgraph.Relationship) int {
		switch {
		case x.Strength > y.Strength:
			return -1
		case x.Strength < y.Strength:
			return 1
		}
		return 0
	})

	rows := make([][]string, len(sorted))
	for i, r := range sorted {
		dir := "→"
		if r.Bidirectional {
			dir = "↔"
		}
		rows[i] = []string{dir + " " + r.Target, string(r.Type), strconv.FormatFloat(r.Strength, 'f', 2, 64)}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Target", "Type", "Strength").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 2 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
