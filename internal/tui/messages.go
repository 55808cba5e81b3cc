package tui

import "time"

// Message types for Bubble Tea update loop.

// frameMsg is one animation frame; it is only scheduled while something moves.
type frameMsg time.Time
