package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-idler/internal/systems/combat"
	"github.com/vovakirdan/tui-idler/internal/systems/dungeon"
	"github.com/vovakirdan/tui-idler/internal/world"
)

// Session view styles.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("229")).
			Padding(1, 2)

	hpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	xpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	goldStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// barWidth is the width of the HP and XP meters.
const barWidth = 24

// renderBar draws a fixed-width meter filled proportionally.
func renderBar(current, max float64, style lipgloss.Style) string {
	if max <= 0 {
		max = 1
	}
	ratio := current / max
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * barWidth)
	return style.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", barWidth-filled))
}

// renderSession renders the full play view: character sheet, activity,
// event log, and help bar, with a modal overlaid when achievements or an
// offline report await dismissal.
func renderSession(m *Model) string {
	c := &m.world.Character
	var b strings.Builder

	// Header
	header := fmt.Sprintf("%s  Lv %d", c.Name, c.Level)
	if c.PrestigeRank > 0 {
		header += goldStyle.Render(fmt.Sprintf("  ✦%d", c.PrestigeRank))
	}
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	// Meters
	need := m.engine.Tuning().XPForLevel(c.Level)
	b.WriteString(fmt.Sprintf("%s %s %d/%d\n",
		labelStyle.Render("HP"), renderBar(float64(c.HP), float64(c.Derived.MaxHP), hpStyle),
		c.HP, c.Derived.MaxHP))
	b.WriteString(fmt.Sprintf("%s %s %.0f/%.0f\n",
		labelStyle.Render("XP"), renderBar(c.XP, need, xpStyle),
		c.XP, need))

	// Attributes and derived stats
	a := c.Attributes
	b.WriteString(labelStyle.Render("STR/DEX/CON/INT/WIS/CHA "))
	b.WriteString(fmt.Sprintf("%d/%d/%d/%d/%d/%d", a.STR, a.DEX, a.CON, a.INT, a.WIS, a.CHA))
	b.WriteString(dimStyle.Render(fmt.Sprintf("   dmg %d  def %d  gear %d",
		c.Derived.Damage, c.Derived.Defense, c.EquipmentPower())))
	b.WriteString("\n")

	// Location and counters
	b.WriteString(fmt.Sprintf("%s %s (%d-%d)   %s %d  %s %d  %s %d\n",
		labelStyle.Render("zone"), combat.ZoneName(c.Zone), c.Zone+1, c.Subzone+1,
		labelStyle.Render("kills"), c.TotalKills,
		labelStyle.Render("deaths"), c.Deaths,
		labelStyle.Render("catches"), c.LifetimeCatches))

	// Current activity
	b.WriteString(labelStyle.Render("doing "))
	b.WriteString(renderActivity(c))
	b.WriteString("\n\n")

	// Modal takes priority over the log area
	if overlay := renderOverlay(m); overlay != "" {
		b.WriteString(overlay)
		b.WriteString("\n")
	} else {
		b.WriteString(panelStyle.Render(renderLog(m)))
		b.WriteString("\n")
	}

	// Help bar
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderActivity describes what the character is currently doing.
func renderActivity(c *world.Character) string {
	switch c.Activity {
	case world.ActivityFighting:
		if e := c.Combat.Enemy; e != nil {
			return fmt.Sprintf("fighting %s (Lv %d, %d/%d HP)", e.Name, e.Level, e.HP, e.MaxHP)
		}
		return "fighting"
	case world.ActivityFishing:
		if f := c.Fishing; f != nil {
			return fmt.Sprintf("fishing (rank %d, %d this session)", c.FishingRank, f.Catches)
		}
		return "fishing"
	case world.ActivityDungeon:
		if c.Dungeon != nil {
			return "dungeon: " + dungeon.Describe(c.Dungeon)
		}
		return "dungeon"
	case world.ActivityMinigame:
		if ch := c.Challenge; ch != nil {
			return fmt.Sprintf("playing %s (%d-%d)", ch.Kind, ch.PlayerScore, ch.FoeScore)
		}
		return "minigame"
	default:
		if c.Combat.RegenTicks > 0 {
			return fmt.Sprintf("resting (%d)", c.Combat.RegenTicks)
		}
		return "wandering"
	}
}

// renderLog renders the most recent event lines that fit the window.
func renderLog(m *Model) string {
	visible := 10
	if m.height > 0 {
		visible = m.height - 14
		if visible < 3 {
			visible = 3
		}
	}

	if len(m.log) == 0 {
		return dimStyle.Render("nothing has happened yet")
	}

	start := len(m.log) - visible
	if start < 0 {
		start = 0
	}
	return strings.Join(m.log[start:], "\n")
}

// renderOverlay renders the achievement modal or offline-progress banner.
func renderOverlay(m *Model) string {
	if len(m.modal) > 0 {
		var b strings.Builder
		b.WriteString(titleStyle.Render("Achievements unlocked"))
		b.WriteString("\n\n")
		for _, title := range m.modal {
			b.WriteString("  ★ " + title + "\n")
		}
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("press enter to continue"))
		return modalStyle.Render(b.String())
	}

	if m.offline != nil {
		r := m.offline
		var b strings.Builder
		b.WriteString(titleStyle.Render("Welcome back"))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("  away for %s\n", formatDuration(r.ElapsedSeconds)))
		b.WriteString(fmt.Sprintf("  ~%d enemies defeated, %.0f XP\n", r.EstimatedKills, r.XPGained))
		if r.LevelsGained > 0 {
			b.WriteString(goldStyle.Render(fmt.Sprintf("  %d levels gained — now level %d\n", r.LevelsGained, r.NewLevel)))
		}
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("press enter to continue"))
		return modalStyle.Render(b.String())
	}

	return ""
}

// formatDuration renders elapsed seconds as a compact human duration.
func formatDuration(seconds int64) string {
	switch {
	case seconds >= 86400:
		return fmt.Sprintf("%dd %dh", seconds/86400, seconds%86400/3600)
	case seconds >= 3600:
		return fmt.Sprintf("%dh %dm", seconds/3600, seconds%3600/60)
	case seconds >= 60:
		return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
