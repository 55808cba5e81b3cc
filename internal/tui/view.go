package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ensigniasec/pullfight/internal/physics"
)

//nolint:gochecknoglobals // Read-only spinner frames, one per quarter turn.
var spinnerGlyphs = []string{"◐", "◓", "◑", "◒"}

func (m Model) View() string {
	if m.quitting {
		return "Nothing new. Bye.\n"
	}

	width := m.feed.Width
	footer := m.help.View(m.keys)

	var b strings.Builder
	b.WriteString(renderHeader(m, width))
	b.WriteString("\n")

	rows := m.voidRows()
	if rows > 0 {
		b.WriteString(renderVoid(m, width, rows))
		b.WriteString("\n")
	}

	// Render the feed into whatever height the void leaves.
	feed := m.feed
	if m.height > 0 {
		feed.Height = max(m.height-headerLines-m.footerHeight()-rows, feedMinHeight)
	}
	b.WriteString(feed.View())
	b.WriteString("\n")
	b.WriteString(footer)
	return b.String()
}

func renderHeader(m Model, width int) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69")).Render("pullfight")
	status := "pull down to refresh"
	switch {
	case m.engine.Busy():
		status = "refreshing…"
	case m.refreshes > 0:
		status = fmt.Sprintf("refreshed %d× · nothing new", m.refreshes)
	}
	status = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(status)

	pad := max(width-lipgloss.Width(title)-lipgloss.Width(status), 1)
	line := title + strings.Repeat(" ", pad) + status
	rule := lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Render(strings.Repeat("─", max(width, 1)))
	return line + "\n" + rule
}

// renderVoid draws the empty region above the feed: spinner, taunt and trigger progress,
// keeping the most important lines when there is little room.
func renderVoid(m Model, width, rows int) string {
	f := m.frame
	busy := f.Phase == physics.Refreshing.String()

	label := "pull to refresh"
	switch {
	case busy:
		label = "refreshing… (not really)"
	case f.Opacity >= 1:
		label = "release to refresh"
	}
	lines := []string{spinnerStyle(f.Opacity, busy).Render(spinnerGlyph(f.SpinnerAngle) + " " + label)}
	if f.Message != "" {
		lines = append(lines, lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("208")).Render("“"+f.Message+"”"))
	}
	lines = append(lines, m.progress.ViewAs(f.Opacity))
	if len(lines) > rows {
		lines = lines[:rows]
	}
	return lipgloss.Place(max(width, 1), rows, lipgloss.Center, lipgloss.Center, strings.Join(lines, "\n"))
}

func spinnerGlyph(angle float64) string {
	idx := int(math.Floor(angle/90)) % len(spinnerGlyphs)
	if idx < 0 {
		idx += len(spinnerGlyphs)
	}
	return spinnerGlyphs[idx]
}

// spinnerStyle fades the spinner from dark gray to white with opacity.
func spinnerStyle(opacity float64, busy bool) lipgloss.Style {
	if busy {
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	}
	opacity = math.Min(math.Max(opacity, 0), 1)
	shade := grayRampStart + int(math.Round(opacity*grayRampSteps))
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprint(shade)))
}
