package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-idler/internal/storage"
)

// Stats layout constants
const (
	maxRows = 100 // Max rows to load per tab
)

// statsTab selects which dataset the stats table shows.
type statsTab int

const (
	tabSaves statsTab = iota
	tabRuns

	tabCount
)

func (t statsTab) String() string {
	switch t {
	case tabSaves:
		return "Saves"
	case tabRuns:
		return "Sim runs"
	default:
		return "?"
	}
}

// StatsKeyMap defines the key bindings for the stats screen.
type StatsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StatsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k StatsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextTab, k.PrevTab, k.Quit},
	}
}

// DefaultStatsKeyMap returns default key bindings.
func DefaultStatsKeyMap() StatsKeyMap {
	return StatsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev tab"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// StatsModel is the Bubble Tea model for the stats screen: character saves
// and recorded simulator runs, each in its own tab.
type StatsModel struct {
	store    *storage.Store
	tab      statsTab
	table    table.Model
	help     help.Model
	keys     StatsKeyMap
	width    int
	height   int
	quitting bool
}

// NewStatsModel creates a stats model over the given store.
func NewStatsModel(store *storage.Store, width, height int) StatsModel {
	h := help.New()
	h.ShowAll = false

	m := StatsModel{
		store:  store,
		keys:   DefaultStatsKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}

	m.table = m.createTable()
	m.loadRows()
	return m
}

// createTable creates a table with columns for the active tab.
func (m *StatsModel) createTable() table.Model {
	var columns []table.Column
	switch m.tab {
	case tabRuns:
		columns = []table.Column{
			{Title: "Seed", Width: 12},
			{Title: "Ticks", Width: 8},
			{Title: "Level", Width: 6},
			{Title: "Kills", Width: 7},
			{Title: "Deaths", Width: 7},
			{Title: "Zone", Width: 5},
			{Title: "Date", Width: 14},
		}
	default:
		columns = []table.Column{
			{Title: "Name", Width: 14},
			{Title: "Level", Width: 6},
			{Title: "Rank", Width: 5},
			{Title: "Zone", Width: 5},
			{Title: "Date", Width: 14},
		}
	}

	height := m.height - 8
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRows fills the table from the store for the active tab.
func (m *StatsModel) loadRows() {
	if m.store == nil {
		m.table.SetRows(nil)
		return
	}

	var rows []table.Row
	switch m.tab {
	case tabRuns:
		runs, err := m.store.RecentRuns(maxRows)
		if err == nil {
			for _, r := range runs {
				rows = append(rows, table.Row{
					fmt.Sprintf("%d", r.Seed),
					fmt.Sprintf("%d", r.Ticks),
					fmt.Sprintf("%d", r.FinalLevel),
					fmt.Sprintf("%d", r.Kills),
					fmt.Sprintf("%d", r.Deaths),
					fmt.Sprintf("%d", r.ZoneReached+1),
					r.CreatedAt.Format("Jan 02 15:04"),
				})
			}
		}
	default:
		saves, err := m.store.ListSaves(maxRows)
		if err == nil {
			for _, s := range saves {
				rows = append(rows, table.Row{
					s.Name,
					fmt.Sprintf("%d", s.Level),
					fmt.Sprintf("%d", s.PrestigeRank),
					fmt.Sprintf("%d", s.Zone+1),
					s.CreatedAt.Format("Jan 02 15:04"),
				})
			}
		}
	}

	m.table.SetRows(rows)
	m.table.GotoTop()
}

// switchTab moves to another tab and reloads.
func (m *StatsModel) switchTab(delta int) {
	m.tab = statsTab((int(m.tab) + delta + int(tabCount)) % int(tabCount))
	m.table = m.createTable()
	m.loadRows()
}

// Init initializes the stats model.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the stats screen.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.switchTab(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.switchTab(-1)
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.loadRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the stats screen.
func (m StatsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// Tab line
	var tabs []string
	for t := statsTab(0); t < tabCount; t++ {
		label := " " + t.String() + " "
		if t == m.tab {
			tabs = append(tabs, titleStyle.Render("["+t.String()+"]"))
		} else {
			tabs = append(tabs, dimStyle.Render(label))
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n\n")

	if len(m.table.Rows()) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(panelStyle.Render(empty.Render("Nothing recorded yet.")))
	} else {
		b.WriteString(panelStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// RunStats runs the stats screen until the user quits.
func RunStats(store *storage.Store, width, height int) error {
	model := NewStatsModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
