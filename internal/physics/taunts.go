package physics

// DefaultTaunts are shown while the user pulls past the message threshold.
//
//nolint:gochecknoglobals // Read-only default list.
var DefaultTaunts = []string{
	"Nope.",
	"Pull harder. I dare you.",
	"Your feed is fine the way it is.",
	"Refreshing is a state of mind.",
	"Is that all you've got?",
	"There is nothing new. There never was.",
	"Stop touching me.",
	"I can do this all day.",
	"Have you tried going outside?",
	"New posts require emotional readiness.",
}
