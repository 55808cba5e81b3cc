package tui

import (
	"math"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// handleKey processes key bindings and returns updated model and command.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) { // nolint:ireturn
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
		m.help.ShowAll = m.helpVisible
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		// The refresh key only heckles; pulling is the sole way to "refresh".
		m.engine.Heckle(m.now())
		return m, m.ensureTicking()

	case key.Matches(msg, m.keys.Up):
		if !m.engine.Dragging() {
			m.feed.LineUp(scrollStep)
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if !m.engine.Dragging() {
			m.feed.LineDown(scrollStep)
		}
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.feed.GotoTop()
		return m, nil
	}

	return m, nil
}

// handleMouse turns a left-button drag into a pull gesture. Ctrl or Alt held
// during the drag stands in for a second contact point.
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) { // nolint:ireturn
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if !m.engine.Dragging() {
			m.feed.LineUp(scrollStep)
		}
		return m, nil
	case tea.MouseButtonWheelDown:
		if !m.engine.Dragging() {
			m.feed.LineDown(scrollStep)
		}
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || msg.Y < headerLines {
			return m, nil
		}
		// The row scale is fixed for the whole gesture so a resize mid-drag cannot jump.
		scale := m.rowUnits()
		if !m.engine.Begin(float64(msg.Y)*scale, m.feed.AtTop(), m.now()) {
			return m, nil
		}
		m.dragScale = scale
		return m, m.ensureTicking()

	case tea.MouseActionMotion:
		if !m.engine.Dragging() {
			return m, nil
		}
		m.engine.Move(float64(msg.Y)*m.dragScale, msg.Ctrl || msg.Alt, m.now())
		return m, m.ensureTicking()

	case tea.MouseActionRelease:
		if !m.engine.Dragging() {
			return m, nil
		}
		m.engine.Release(m.now())
		return m, m.ensureTicking()
	}
	return m, nil
}

// ensureTicking schedules a frame unless one is already in flight.
func (m *Model) ensureTicking() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return m.tickFrame()
}

// resizeFeed re-wraps the feed for the current terminal size.
func (m *Model) resizeFeed() {
	width := contentMaxWidth
	if m.width > 0 && m.width < width {
		width = m.width
	}
	m.feed.Width = width
	m.feed.Height = max(m.height-headerLines-m.footerHeight(), feedMinHeight)
	m.feed.SetContent(renderFeed(m.posts, width))
}

// voidRows is the height of the void region, leaving room for the feed.
func (m Model) voidRows() int {
	rows := max(m.void.rows(m.cfg.CellPixels), 0)
	if m.height > 0 {
		rows = min(rows, max(m.height-headerLines-m.footerHeight()-feedMinHeight, 0))
	}
	return rows
}

// footerHeight is the height of the help footer, which grows when full help is shown.
func (m Model) footerHeight() int {
	return lipgloss.Height(m.help.View(m.keys))
}

// rowUnits is the pointer travel one terminal row is worth. A drag from the
// top of the feed to the last row covers PullSpan, but a row never counts for
// less than CellPixels.
func (m Model) rowUnits() float64 {
	rows := m.height - 1 - headerLines
	if rows <= 0 || m.cfg.PullSpan <= 0 {
		return m.cfg.CellPixels
	}
	return math.Max(m.cfg.CellPixels, m.cfg.PullSpan/float64(rows))
}
