package physics

import "time"

// MultiTouchMode selects how a multi-contact drag modifies the pull.
type MultiTouchMode string

const (
	// MultiTouchAmplify multiplies each pointer step by MultiTouchMultiplier.
	MultiTouchAmplify MultiTouchMode = "amplify"
	// MultiTouchEase scales the resistance factor by MultiTouchResistanceScale.
	MultiTouchEase MultiTouchMode = "ease"
)

// Tuning holds every constant of the resistance/spring tick. Displacement units
// are abstract "pixels"; hosts map them onto their own coordinate space.
type Tuning struct {
	Max                 float64 `yaml:"max" json:"max" validate:"gt=0"`
	TriggerThreshold    float64 `yaml:"trigger_threshold" json:"trigger_threshold" validate:"gt=0"`
	VoidAppearThreshold float64 `yaml:"void_appear_threshold" json:"void_appear_threshold" validate:"gte=0"`
	MessageThreshold    float64 `yaml:"message_threshold" json:"message_threshold" validate:"gte=0"`

	ResistanceBase    float64 `yaml:"resistance_base" json:"resistance_base" validate:"gte=0,lt=1"`
	ResistanceCeiling float64 `yaml:"resistance_ceiling" json:"resistance_ceiling" validate:"gt=0,lt=1"`
	ResistanceScale   float64 `yaml:"resistance_scale" json:"resistance_scale" validate:"gt=0"`
	Blend             float64 `yaml:"blend" json:"blend" validate:"gt=0,lte=1"`

	JerkProbability float64 `yaml:"jerk_probability" json:"jerk_probability" validate:"gte=0,lte=1"`
	JerkMagnitude   float64 `yaml:"jerk_magnitude" json:"jerk_magnitude" validate:"gte=0"`

	// ReleaseDecay is the proportional decay rate per second; ReleaseMinSpeed is its floor in units per second.
	ReleaseDecay    float64 `yaml:"release_decay" json:"release_decay" validate:"gt=0"`
	ReleaseMinSpeed float64 `yaml:"release_min_speed" json:"release_min_speed" validate:"gt=0"`

	SpinSpeed float64 `yaml:"spin_speed" json:"spin_speed" validate:"gte=0"` // degrees per second

	MessageProbability float64       `yaml:"message_probability" json:"message_probability" validate:"gte=0,lte=1"`
	MessageDuration    time.Duration `yaml:"message_duration" json:"message_duration" validate:"gt=0"`
	RefreshDuration    time.Duration `yaml:"refresh_duration" json:"refresh_duration" validate:"gt=0"`
	MaxFrameStep       time.Duration `yaml:"max_frame_step" json:"max_frame_step" validate:"gt=0"`

	MultiTouchMode            MultiTouchMode `yaml:"multi_touch_mode" json:"multi_touch_mode" validate:"oneof=amplify ease"`
	MultiTouchMultiplier      float64        `yaml:"multi_touch_multiplier" json:"multi_touch_multiplier" validate:"gte=1"`
	MultiTouchResistanceScale float64        `yaml:"multi_touch_resistance_scale" json:"multi_touch_resistance_scale" validate:"gt=0,lte=1"`
}

// DefaultTuning returns the stock feel. The jerk and message numbers were picked by
// hand and are cosmetic.
func DefaultTuning() Tuning {
	return Tuning{
		Max:                 320,
		TriggerThreshold:    180,
		VoidAppearThreshold: 24,
		MessageThreshold:    110,

		ResistanceBase:    0.45,
		ResistanceCeiling: 0.96,
		ResistanceScale:   140,
		Blend:             0.3,

		JerkProbability: 0.04,
		JerkMagnitude:   28,

		ReleaseDecay:    9,
		ReleaseMinSpeed: 90,

		SpinSpeed: 540,

		MessageProbability: 0.03,
		MessageDuration:    1500 * time.Millisecond,
		RefreshDuration:    2 * time.Second,
		MaxFrameStep:       100 * time.Millisecond,

		MultiTouchMode:            MultiTouchAmplify,
		MultiTouchMultiplier:      2,
		MultiTouchResistanceScale: 0.5,
	}
}
