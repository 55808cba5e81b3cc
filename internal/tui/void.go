package tui

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// voidSpring smooths the rendered void height so row quantisation does not stutter.
type voidSpring struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
}

func newVoidSpring(fps int) voidSpring {
	return voidSpring{spring: harmonica.NewSpring(harmonica.FPS(fps), voidSpringFrequency, voidSpringDamping)}
}

// step moves one frame towards target and returns the smoothed position.
func (v *voidSpring) step(target float64) float64 {
	v.pos, v.vel = v.spring.Update(v.pos, v.vel, target)
	if math.Abs(v.pos-target) < voidSettleEpsilon && math.Abs(v.vel) < voidSettleEpsilon {
		v.pos, v.vel = target, 0
	}
	if v.pos < 0 {
		v.pos, v.vel = 0, 0
	}
	return v.pos
}

func (v *voidSpring) settled(target float64) bool {
	return v.pos == target && v.vel == 0
}

// rows converts the smoothed displacement into terminal rows.
func (v *voidSpring) rows(cellPixels float64) int {
	if cellPixels <= 0 {
		return 0
	}
	return int(math.Round(v.pos / cellPixels))
}
