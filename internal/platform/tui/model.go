package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-idler/internal/achievements"
	"github.com/vovakirdan/tui-idler/internal/event"
	"github.com/vovakirdan/tui-idler/internal/rng"
	"github.com/vovakirdan/tui-idler/internal/sim"
	"github.com/vovakirdan/tui-idler/internal/storage"
	"github.com/vovakirdan/tui-idler/internal/world"
)

// maxLogLines is how many recent event lines the session keeps around.
const maxLogLines = 200

// Model is the Bubble Tea model for an interactive play session. It owns
// no simulation logic; every tick goes through the sim engine, identical
// to the headless simulator.
type Model struct {
	engine *sim.Engine
	world  *world.State
	src    rng.Source
	store  *storage.Store

	keys PlayKeyMap
	help help.Model

	tickMS int
	width  int
	height int

	log     []string
	modal   []string // achievement titles awaiting dismissal
	offline *sim.OfflineReport

	quitting bool
}

// NewModel creates a play session model. The store may be nil; saves then
// become no-ops.
func NewModel(engine *sim.Engine, w *world.State, src rng.Source, store *storage.Store, tickMS int) Model {
	h := help.New()
	h.ShowAll = false

	return Model{
		engine: engine,
		world:  w,
		src:    src,
		store:  store,
		keys:   DefaultPlayKeyMap(),
		help:   h,
		tickMS: tickMS,
	}
}

// WithOfflineReport attaches an offline-progress banner shown until the
// first achievement modal replaces it.
func (m Model) WithOfflineReport(report sim.OfflineReport) Model {
	if report.ElapsedSeconds > 0 {
		m.offline = &report
	}
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickMS)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Keys express intent only; the state
// change happens through engine calls so the kernel stays authoritative.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.saveWorld()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Dismiss):
		m.modal = nil
		m.offline = nil
		return m, nil

	case key.Matches(msg, m.keys.Fish):
		if m.world.Character.Activity == world.ActivityFishing {
			m.appendEvents(m.engine.StopFishing(m.world))
		} else {
			m.engine.StartFishing(m.world)
		}
		return m, nil

	case key.Matches(msg, m.keys.Prestige):
		if events := m.engine.Prestige(m.world); events != nil {
			m.appendEvents(events)
		}
		return m, nil

	case key.Matches(msg, m.keys.Haven):
		if room := m.nextHavenRoom(); room != "" {
			m.appendEvents(m.engine.UpgradeHavenRoom(m.world, room))
		}
		return m, nil

	case key.Matches(msg, m.keys.Save):
		m.saveWorld()
		return m, nil
	}

	return m, nil
}

// handleTick advances the simulation by one tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	res := m.engine.Advance(m.world, m.src)
	m.appendEvents(res.Events)

	if len(res.ReadyAchievements) > 0 {
		m.offline = nil
		titles := make([]string, 0, len(res.ReadyAchievements))
		for _, id := range res.ReadyAchievements {
			title := id
			if a, ok := achievements.Lookup(id); ok {
				title = a.Title
			}
			titles = append(titles, title)
		}
		m.modal = append(m.modal, titles...)
	}

	return m, tickCmd(m.tickMS)
}

// appendEvents renders events into the session log, trimming to the cap.
func (m *Model) appendEvents(events []event.Event) {
	for _, e := range events {
		m.log = append(m.log, e.String())
	}
	if len(m.log) > maxLogLines {
		m.log = m.log[len(m.log)-maxLogLines:]
	}
}

// nextHavenRoom picks the lowest-tier haven room, first in listing order
// on ties, so repeated presses level the haven evenly.
func (m *Model) nextHavenRoom() string {
	if !m.world.Account.HavenUnlocked {
		return ""
	}
	best, bestTier := "", -1
	for _, room := range world.HavenRoomNames {
		tier := m.world.Account.HavenRooms[room]
		if bestTier == -1 || tier < bestTier {
			best, bestTier = room, tier
		}
	}
	return best
}

// saveWorld persists a snapshot. Best-effort; the session continues on
// failure.
func (m *Model) saveWorld() {
	if m.store == nil {
		return
	}
	//nolint:errcheck // Best-effort save, session continues regardless
	m.store.SaveWorld(m.world)
}

// View renders the current session state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return renderSession(&m)
}

// Run starts the Bubble Tea program for a local play session.
func Run(m Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
