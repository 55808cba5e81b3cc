// Package sim drives a physics engine with a scripted gesture on a synthetic clock.
package sim

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/pullfight/internal/physics"
)

// ErrRejected is returned when the engine refuses to start the gesture.
var ErrRejected = errors.New("gesture rejected")

const defaultMaxFrames = 10_000

// Script describes one pull gesture.
type Script struct {
	Pull  float64       // total downward pointer travel
	Steps int           // pointer moves, one per frame
	Hold  time.Duration // time held at the bottom before release
	Multi bool          // multi-touch modifier
	// NotAtTop simulates content scrolled away from the top.
	NotAtTop bool
}

// Runner executes scripts at a fixed frame rate.
type Runner struct {
	FPS       int
	MaxFrames int
	Start     time.Time
}

// Result is the frame log of one run.
type Result struct {
	Frames    []physics.Frame `json:"frames"`
	Peak      float64         `json:"peak"`
	Refreshed bool            `json:"refreshed"`
	Taunts    []string        `json:"taunts,omitempty"`
	Truncated bool            `json:"truncated,omitempty"`
}

// Run plays s against e until the engine goes idle or MaxFrames is reached.
func (r Runner) Run(e *physics.Engine, s Script) (Result, error) {
	fps := r.FPS
	if fps <= 0 {
		fps = 60
	}
	maxFrames := r.MaxFrames
	if maxFrames <= 0 {
		maxFrames = defaultMaxFrames
	}
	step := time.Second / time.Duration(fps)
	now := r.Start
	if now.IsZero() {
		now = time.Unix(0, 0).UTC()
	}

	if !e.Begin(0, !s.NotAtTop, now) {
		return Result{}, ErrRejected
	}

	var res Result
	lastTaunt := ""
	record := func(f physics.Frame) {
		res.Frames = append(res.Frames, f)
		if f.Displacement > res.Peak {
			res.Peak = f.Displacement
		}
		if f.RefreshStarted {
			res.Refreshed = true
		}
		if f.Message != "" && f.Message != lastTaunt {
			res.Taunts = append(res.Taunts, f.Message)
		}
		lastTaunt = f.Message
	}

	steps := max(s.Steps, 1)
	for i := 1; i <= steps; i++ {
		now = now.Add(step)
		e.Move(s.Pull*float64(i)/float64(steps), s.Multi, now)
		record(e.Tick(now))
	}
	for held := time.Duration(0); held < s.Hold; held += step {
		now = now.Add(step)
		record(e.Tick(now))
	}

	e.Release(now)
	for e.Active() {
		if len(res.Frames) >= maxFrames {
			res.Truncated = true
			logrus.Warnf("simulation stopped after %d frames", maxFrames)
			break
		}
		now = now.Add(step)
		record(e.Tick(now))
	}
	return res, nil
}
