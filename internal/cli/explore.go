package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tierflow/pkg/chart"
	tferrors "github.com/matzehuels/tierflow/pkg/errors"
	"github.com/matzehuels/tierflow/pkg/flow"
	"github.com/matzehuels/tierflow/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	markerFocused  = "●"
	markerRetained = "•"
	exploreBarSize = 24
)

// exploreCommand creates the explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	var f chartFlags

	cmd := &cobra.Command{
		Use:   "explore <records>",
		Short: "Browse the flow graph and toggle the country focus",
		Long: `Open an interactive view of the flow graph. Selecting a country focuses
every chart on it; selecting it again clears the focus.`,
		Example: `  tierflow explore athletes.csv
  tierflow explore athletes.csv --variant events`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			recs, err := loadRecords(cmd.Context(), args[0], f.inputFormat)
			if err != nil {
				return err
			}
			session, err := pipeline.NewSession(recs, f.options(cmd, cfg))
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(NewExploreModel(session), tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	f.register(cmd)
	return cmd
}

// =============================================================================
// ExploreModel - Interactive focus selection
// =============================================================================

// ExploreModel is the bubbletea model of the explore view. It lists every
// country of the records next to a summary of the current graph.
type ExploreModel struct {
	Session  *pipeline.Session
	Snapshot pipeline.Snapshot
	Cursor   int
	Height   int
	Offset   int
	// Err is the last failed recomputation. The previous snapshot stays on
	// screen.
	Err error
}

// NewExploreModel creates a model over session.
func NewExploreModel(session *pipeline.Session) ExploreModel {
	return ExploreModel{
		Session:  session,
		Snapshot: session.Snapshot(),
		Height:   15,
	}
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Snapshot.Countries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			if country, ok := m.current(); ok {
				m.apply(m.Session.ToggleFocus(country))
			}
		case "c", "esc":
			m.apply(m.Session.ClearFocus())
		case "+", "=":
			m.apply(m.Session.SetTopCountries(m.Session.TopCountries() + 1))
		case "-":
			if n := m.Session.TopCountries(); n > 0 {
				m.apply(m.Session.SetTopCountries(n - 1))
			}
		case "]":
			m.apply(m.Session.SetTopCategories(m.Session.TopCategories() + 1))
		case "[":
			if n := m.Session.TopCategories(); n > 0 {
				m.apply(m.Session.SetTopCategories(n - 1))
			}
		case "v":
			m.apply(m.Session.SetVariant(nextVariant(m.Session.Variant())))
			m.clampCursor()
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m *ExploreModel) apply(snap pipeline.Snapshot, err error) {
	m.Snapshot = snap
	m.Err = err
}

func (m ExploreModel) current() (string, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Snapshot.Countries) {
		return "", false
	}
	return m.Snapshot.Countries[m.Cursor].Key, true
}

func (m *ExploreModel) clampCursor() {
	last := max(len(m.Snapshot.Countries)-1, 0)
	m.Cursor = min(m.Cursor, last)
	m.Offset = min(m.Offset, m.Cursor)
}

// nextVariant cycles through the registered variants.
func nextVariant(name string) string {
	vs := flow.Variants()
	for i, v := range vs {
		if v.Name == name {
			return vs[(i+1)%len(vs)].Name
		}
	}
	return vs[0].Name
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Explore " + m.Session.Variant()))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("focus %s · top %d countries · top %d %s",
		m.Snapshot.Focus, m.Session.TopCountries(), m.Session.TopCategories(), flow.TierCategory)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ focus  c clear  +/- countries  [/] categories  v variant  q quit"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.countryList(), "   ", m.summary()))
	b.WriteString("\n")
	if m.Err != nil {
		b.WriteString("\n")
		b.WriteString(StyleWarning.Render(tferrors.UserMessage(m.Err)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m ExploreModel) countryList() string {
	countries := m.Snapshot.Countries
	if len(countries) == 0 {
		return listDimStyle.Render("no records")
	}
	retained := m.Snapshot.Result.Countries

	var b strings.Builder
	end := min(m.Offset+m.Height, len(countries))
	for i := m.Offset; i < end; i++ {
		kc := countries[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		focused := m.Snapshot.Focus.Active() && m.Snapshot.Focus.Country() == kc.Key
		marker, style := " ", listDimStyle
		switch {
		case focused:
			marker, style = markerFocused, StyleFocus
		case i == m.Cursor:
			style = listSelectedStyle
			if retained.Has(kc.Key) {
				marker = markerRetained
			}
		case retained.Has(kc.Key):
			marker, style = markerRetained, listNormalStyle
		}
		fmt.Fprintf(&b, "%s%s %s %s\n", cursor, marker, style.Render(kc.Key), listDimStyle.Render(fmt.Sprint(kc.Count)))
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(countries))))
	return b.String()
}

func (m ExploreModel) summary() string {
	res := m.Snapshot.Result
	g := res.Graph
	if g.Empty() {
		return listDimStyle.Render("empty graph")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", StyleDim.Render(fmt.Sprintf("%d nodes · %d links · %d crossings",
		len(g.Nodes), len(g.Links), m.Snapshot.Layering.Crossings)))
	for _, tier := range []flow.Tier{flow.TierCountry, flow.TierCategory, flow.TierSubgroup} {
		nodes := g.TierNodes(tier)
		names := make([]string, len(nodes))
		for i, n := range nodes {
			names[i] = n.Name()
		}
		title := lipgloss.NewStyle().Bold(true).Foreground(tierColors[tier]).Render(tier.String())
		fmt.Fprintf(&b, "\n%s %s\n  %s\n", title, listDimStyle.Render(fmt.Sprint(len(nodes))), summarize(names, 8))
	}

	if len(m.Snapshot.Bars) > 0 {
		b.WriteString("\n")
		maxCount := chart.MaxCount(m.Snapshot.Bars)
		style := lipgloss.NewStyle().Foreground(tierColors[flow.TierCountry])
		for _, bar := range m.Snapshot.Bars {
			fmt.Fprintf(&b, "%-12.12s %s %d\n", bar.Country, renderBar(bar.Count, maxCount, exploreBarSize, style), bar.Count)
		}
	}
	return b.String()
}
