package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ensigniasec/pullfight/internal/physics"
)

func TestRun_ShortPullSettles(t *testing.T) {
	t.Parallel()

	e := physics.NewEngine(physics.DefaultTuning(), physics.WithSeed(1))
	res, err := Runner{FPS: 60}.Run(e, Script{Pull: 60, Steps: 10})
	require.NoError(t, err)

	assert.False(t, res.Refreshed)
	assert.False(t, res.Truncated)
	assert.Less(t, res.Peak, physics.DefaultTuning().TriggerThreshold)
	last := res.Frames[len(res.Frames)-1]
	assert.Zero(t, last.Displacement)
	assert.Equal(t, "idle", last.Phase)
}

func TestRun_LongPullRefreshes(t *testing.T) {
	t.Parallel()

	tn := physics.DefaultTuning()
	tn.JerkProbability = 0
	e := physics.NewEngine(tn, physics.WithSeed(7))
	res, err := Runner{FPS: 50}.Run(e, Script{Pull: 3000, Steps: 90, Hold: 500 * time.Millisecond})
	require.NoError(t, err)

	require.True(t, res.Refreshed)
	assert.Greater(t, res.Peak, tn.TriggerThreshold)
	assert.LessOrEqual(t, res.Peak, tn.Max)

	// The refresh starts at the release, one frame before it is reported.
	var released, completed time.Time
	for i, f := range res.Frames {
		if f.RefreshStarted {
			require.Positive(t, i)
			released = res.Frames[i-1].At
		}
		if f.RefreshCompleted {
			completed = f.At
		}
	}
	require.False(t, completed.IsZero())
	assert.Equal(t, tn.RefreshDuration, completed.Sub(released))
}

func TestRun_RejectedAwayFromTop(t *testing.T) {
	t.Parallel()

	e := physics.NewEngine(physics.DefaultTuning(), physics.WithSeed(1))
	_, err := Runner{}.Run(e, Script{Pull: 500, Steps: 5, NotAtTop: true})
	require.ErrorIs(t, err, ErrRejected)
	assert.Zero(t, e.State().Displacement)
}

func TestRun_FrameCap(t *testing.T) {
	t.Parallel()

	tn := physics.DefaultTuning()
	tn.RefreshDuration = time.Hour
	tn.JerkProbability = 0
	e := physics.NewEngine(tn, physics.WithSeed(3))
	res, err := Runner{FPS: 60, MaxFrames: 200}.Run(e, Script{Pull: 3000, Steps: 120})
	require.NoError(t, err)
	assert.True(t, res.Truncated)
	assert.Len(t, res.Frames, 200)
}

func TestRun_CollectsTaunts(t *testing.T) {
	t.Parallel()

	tn := physics.DefaultTuning()
	tn.MessageProbability = 1
	tn.MessageThreshold = 1
	e := physics.NewEngine(tn, physics.WithSeed(11), physics.WithTaunts([]string{"stop"}))
	res, err := Runner{FPS: 60}.Run(e, Script{Pull: 400, Steps: 30})
	require.NoError(t, err)
	require.NotEmpty(t, res.Taunts)
	assert.Equal(t, "stop", res.Taunts[0])
}
