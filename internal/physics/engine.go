package physics

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Rand is the random source consumed by the engine. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Engine runs the resistance/spring tick over a single PullState.
// It is not safe for concurrent use; hosts drive it from one loop.
type Engine struct {
	tuning Tuning
	taunts []string
	rng    Rand

	state    PullState
	drag     *gesture
	lastTick time.Time

	// refreshStarted is reported once by the next Tick.
	refreshStarted bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithTaunts replaces the default taunt list. An empty list disables taunts.
func WithTaunts(taunts []string) Option {
	return func(e *Engine) {
		e.taunts = append([]string(nil), taunts...)
	}
}

// WithRand injects a random source, mostly for tests.
func WithRand(r Rand) Option {
	return func(e *Engine) {
		if r != nil {
			e.rng = r
		}
	}
}

// WithSeed seeds the default PCG source for reproducible runs.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec // cosmetic randomness
	}
}

// NewEngine constructs an idle engine with displacement 0.
func NewEngine(t Tuning, opts ...Option) *Engine {
	e := &Engine{
		tuning: t,
		taunts: append([]string(nil), DefaultTaunts...),
		rng:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)), //nolint:gosec // cosmetic randomness
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns a copy of the current state.
func (e *Engine) State() PullState {
	s := e.state
	if s.Message != nil {
		m := *s.Message
		s.Message = &m
	}
	return s
}

// Tuning returns the constants the engine was built with.
func (e *Engine) Tuning() Tuning { return e.tuning }

// Busy reports whether a simulated refresh is in progress.
func (e *Engine) Busy() bool { return e.state.Phase == Refreshing }

// Dragging reports whether a gesture is active.
func (e *Engine) Dragging() bool { return e.state.Phase == Dragging }

// Active reports whether the host should schedule another frame.
func (e *Engine) Active() bool {
	return e.state.Phase != Idle || e.state.Displacement > 0 || e.state.Message != nil
}

// Begin starts a drag at pointer position y. It is rejected while refreshing or
// when the content is not scrolled to the top.
func (e *Engine) Begin(y float64, atTop bool, now time.Time) bool {
	if e.Busy() {
		logrus.Debug("pull rejected: refresh in progress")
		return false
	}
	if !atTop {
		logrus.Debug("pull rejected: content not at top")
		return false
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return false
	}

	g := &gesture{id: uuid.New(), startY: y, lastY: y, began: now, movedAt: now}
	// Grabbing a settling pull continues from where it is instead of snapping back.
	if d := e.state.Displacement; d > 0 {
		g.raw = d / (1 - e.resistance(d, false))
	}
	if !e.Active() {
		e.lastTick = now
	}
	e.drag = g
	e.state.Phase = Dragging
	logrus.WithField("gesture", g.id.String()).Debugf("pull started at y=%.1f", y)
	return true
}

// Move feeds a pointer position during a drag. Only downward travel beyond the
// furthest point reached so far counts; upward or undefined motion is a no-op.
func (e *Engine) Move(y float64, multi bool, now time.Time) {
	g := e.drag
	if g == nil || e.state.Phase != Dragging {
		return
	}
	step := y - g.lastY
	if math.IsNaN(step) || math.IsInf(step, 0) || step <= 0 {
		return
	}
	g.lastY = y
	g.multi = multi
	g.movedAt = now
	if multi && e.tuning.MultiTouchMode == MultiTouchAmplify {
		step *= e.tuning.MultiTouchMultiplier
	}
	g.raw += step
	e.state.Displacement = e.dragStep(e.state.Displacement)
}

// Release ends the drag. Past the trigger threshold a simulated refresh starts.
func (e *Engine) Release(now time.Time) {
	g := e.drag
	if g == nil || e.state.Phase != Dragging {
		return
	}
	e.drag = nil
	log := logrus.WithFields(logrus.Fields{
		"gesture":  g.id.String(),
		"travel":   g.lastY - g.startY,
		"duration": now.Sub(g.began),
		"held":     now.Sub(g.movedAt),
	})

	if e.state.Displacement > e.tuning.TriggerThreshold {
		e.state.Phase = Refreshing
		e.state.RefreshUntil = now.Add(e.tuning.RefreshDuration)
		e.refreshStarted = true
		log.Debugf("refresh started at displacement %.1f", e.state.Displacement)
		return
	}
	e.state.Phase = Releasing
	if e.state.Displacement <= 0 {
		e.state.Displacement = 0
		e.state.Phase = Idle
	}
	log.Debugf("released at displacement %.1f", e.state.Displacement)
}

// Heckle shows a random taunt immediately and returns its text.
func (e *Engine) Heckle(now time.Time) string {
	if len(e.taunts) == 0 {
		return ""
	}
	if !e.Active() {
		e.lastTick = now
	}
	e.showTaunt(now)
	return e.state.Message.Text
}

// Tick advances the state to now and returns the frame to render.
func (e *Engine) Tick(now time.Time) Frame {
	dt := now.Sub(e.lastTick)
	if e.lastTick.IsZero() || dt < 0 {
		dt = 0
	}
	if dt > e.tuning.MaxFrameStep {
		dt = e.tuning.MaxFrameStep
	}
	e.lastTick = now
	secs := dt.Seconds()

	if m := e.state.Message; m != nil && !now.Before(m.VisibleUntil) {
		e.state.Message = nil
	}

	frame := Frame{At: now, RefreshStarted: e.refreshStarted}
	e.refreshStarted = false

	switch e.state.Phase {
	case Dragging:
		d := e.dragStep(e.state.Displacement)
		if e.rng.Float64() < e.tuning.JerkProbability {
			d -= e.tuning.JerkMagnitude * (0.5 + 0.5*e.rng.Float64())
		}
		e.state.Displacement = e.clamp(d)
		if len(e.taunts) > 0 && e.state.Displacement > e.tuning.MessageThreshold && e.rng.Float64() < e.tuning.MessageProbability {
			e.showTaunt(now)
		}

	case Releasing:
		d := e.state.Displacement
		decay := math.Max(d*e.tuning.ReleaseDecay*secs, e.tuning.ReleaseMinSpeed*secs)
		d = e.clamp(d - decay)
		e.state.Displacement = d
		if d == 0 {
			e.state.Phase = Idle
		}

	case Refreshing:
		if !now.Before(e.state.RefreshUntil) {
			e.state.Displacement = 0
			e.state.Phase = Idle
			e.state.RefreshUntil = time.Time{}
			frame.RefreshCompleted = true
			logrus.Debug("refresh finished")
		}

	case Idle:
	}

	switch {
	case e.state.Phase == Refreshing:
		e.spin(2 * secs)
	case e.state.Displacement > e.tuning.VoidAppearThreshold:
		e.spin(secs)
	}
	e.state.Opacity = math.Min(math.Max(e.state.Displacement/e.tuning.TriggerThreshold, 0), 1)

	frame.Displacement = e.state.Displacement
	frame.Phase = e.state.Phase.String()
	frame.SpinnerAngle = e.state.SpinnerAngle
	frame.Opacity = e.state.Opacity
	if e.state.Message != nil {
		frame.Message = e.state.Message.Text
	}
	return frame
}

// resistance is the fraction of pointer travel suppressed at displacement d. It
// rises from ResistanceBase towards ResistanceCeiling and never reaches it.
func (e *Engine) resistance(d float64, multi bool) float64 {
	t := e.tuning
	r := t.ResistanceCeiling - (t.ResistanceCeiling-t.ResistanceBase)*math.Exp(-d/t.ResistanceScale)
	if multi && t.MultiTouchMode == MultiTouchEase {
		r *= t.MultiTouchResistanceScale
	}
	return r
}

func (e *Engine) dragStep(d float64) float64 {
	g := e.drag
	if g == nil {
		return d
	}
	target := g.raw * (1 - e.resistance(d, g.multi))
	return e.clamp(d + (target-d)*e.tuning.Blend)
}

func (e *Engine) showTaunt(now time.Time) {
	text := e.taunts[e.rng.IntN(len(e.taunts))]
	e.state.Message = &Taunt{Text: text, VisibleUntil: now.Add(e.tuning.MessageDuration)}
}

func (e *Engine) spin(secs float64) {
	a := math.Mod(e.state.SpinnerAngle+e.tuning.SpinSpeed*secs, 360)
	if a < 0 {
		a += 360
	}
	e.state.SpinnerAngle = a
}

func (e *Engine) clamp(d float64) float64 {
	if math.IsNaN(d) || d < 0 {
		return 0
	}
	if d > e.tuning.Max {
		return e.tuning.Max
	}
	return d
}
