package physics

import (
	"time"

	"github.com/google/uuid"
)

// Phase is the interaction phase of the pull.
type Phase int

const (
	Idle Phase = iota
	Dragging
	Releasing
	Refreshing
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Releasing:
		return "releasing"
	case Refreshing:
		return "refreshing"
	default:
		return "unknown"
	}
}

// Taunt is a transient message shown while the user pulls hard.
type Taunt struct {
	Text         string
	VisibleUntil time.Time
}

// PullState is the only mutable entity of consequence.
type PullState struct {
	Displacement float64
	Phase        Phase
	SpinnerAngle float64
	Opacity      float64
	Message      *Taunt
	RefreshUntil time.Time
}

// gesture tracks the active drag.
type gesture struct {
	id     uuid.UUID
	startY float64
	lastY  float64
	raw    float64
	multi  bool
	// began and movedAt date the press and the last counted move.
	began   time.Time
	movedAt time.Time
}

// Frame is the snapshot a host renders after a tick.
type Frame struct {
	At               time.Time `json:"at"`
	Displacement     float64   `json:"displacement"`
	Phase            string    `json:"phase"`
	SpinnerAngle     float64   `json:"spinner_angle"`
	Opacity          float64   `json:"opacity"`
	Message          string    `json:"message,omitempty"`
	RefreshStarted   bool      `json:"refresh_started,omitempty"`
	RefreshCompleted bool      `json:"refresh_completed,omitempty"`
}
