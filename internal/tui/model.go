package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ensigniasec/pullfight/internal/config"
	"github.com/ensigniasec/pullfight/internal/physics"
)

// Model is the root Bubble Tea model.
type Model struct {
	engine *physics.Engine
	cfg    config.Config
	now    func() time.Time

	feed     viewport.Model
	posts    []post
	progress progress.Model
	void     voidSpring
	help     help.Model

	// frame is the last snapshot returned by the engine.
	frame physics.Frame
	// ticking is true while a frameMsg is scheduled.
	ticking   bool
	refreshes int
	// dragScale is the rowUnits captured when the current gesture began.
	dragScale float64

	width       int
	height      int
	helpVisible bool
	quitting    bool

	// keymap for consistent keybindings
	keys keyMap
}

// NewModel constructs a Model with initial state. now defaults to time.Now.
func NewModel(engine *physics.Engine, cfg config.Config, now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	p := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	p.Width = progressWidth
	vp := viewport.New(contentMaxWidth, feedMinHeight)
	m := Model{
		engine:   engine,
		cfg:      cfg,
		now:      now,
		feed:     vp,
		posts:    mockPosts,
		progress: p,
		void:     newVoidSpring(cfg.FPS),
		help:     help.New(),
		keys:     newKeyMap(),
	}
	m.feed.SetContent(renderFeed(m.posts, contentMaxWidth))
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// frameInterval is the delay between animation frames.
func (m Model) frameInterval() time.Duration {
	if m.cfg.FPS <= 0 {
		return time.Second / 60 //nolint:mnd // fallback frame rate
	}
	return max(time.Second/time.Duration(m.cfg.FPS), minFrameInterval)
}

// tickFrame schedules the next animation frame.
func (m Model) tickFrame() tea.Cmd {
	return tea.Tick(m.frameInterval(), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// animating reports whether another frame is needed.
func (m Model) animating() bool {
	return m.engine.Active() || !m.void.settled(m.frame.Displacement)
}
