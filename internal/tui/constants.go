package tui

import "time"

// Package-level constants to avoid magic numbers and improve readability.
const (
	// headerLines is the title bar above the void region; the feed starts below it plus the void.
	headerLines = 2
	// feedMinHeight keeps the feed visible no matter how far the void opens.
	feedMinHeight   = 3
	contentMaxWidth = 72
	progressWidth   = 30

	// Void spring: follows displacement with a critically damped spring.
	voidSpringFrequency = 9.0
	voidSpringDamping   = 1.0
	voidSettleEpsilon   = 0.5

	// Grayscale ramp used to fade the spinner in with opacity.
	grayRampStart = 236
	grayRampSteps = 19

	minFrameInterval = time.Second / 240

	scrollStep = 1
)
