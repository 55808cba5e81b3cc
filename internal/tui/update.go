package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) { // nolint:ireturn
	switch x := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = x.Width, x.Height
		m.resizeFeed()
		return m, nil

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(x)
		return m, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		m, cmd = m.handleMouse(x)
		return m, cmd

	case frameMsg:
		m.ticking = false
		m.frame = m.engine.Tick(time.Time(x))
		if m.frame.RefreshStarted {
			logrus.Debug("fake refresh started")
		}
		if m.frame.RefreshCompleted {
			m.refreshes++
			logrus.Debugf("fake refresh #%d finished; nothing new", m.refreshes)
		}
		m.void.step(m.frame.Displacement)
		// Stop rescheduling once everything has come to rest.
		if m.animating() {
			return m, m.ensureTicking()
		}
		return m, nil
	}

	return m, nil
}
