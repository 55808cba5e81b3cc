//nolint:testpackage // White-box tests require access to unexported identifiers in this package.
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ensigniasec/pullfight/internal/physics"
	"github.com/ensigniasec/pullfight/internal/validate"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, Validate(cfg))
}

func TestParse_OverridesKeepOtherDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(`
fps: 30
taunts:
  - "go away"
tuning:
  trigger_threshold: 150
  message_duration: 750ms
  multi_touch_mode: ease
`))
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.FPS)
	assert.Equal(t, []string{"go away"}, cfg.Taunts)
	assert.InDelta(t, 150.0, cfg.Tuning.TriggerThreshold, 1e-9)
	assert.Equal(t, 750*time.Millisecond, cfg.Tuning.MessageDuration)
	assert.Equal(t, physics.MultiTouchEase, cfg.Tuning.MultiTouchMode)

	def := physics.DefaultTuning()
	assert.InDelta(t, def.Max, cfg.Tuning.Max, 1e-9)
	assert.Equal(t, def.RefreshDuration, cfg.Tuning.RefreshDuration)
	assert.InDelta(t, 16.0, cfg.CellPixels, 1e-9)
}

func TestParse_EmptyDocument(t *testing.T) {
	t.Parallel()

	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_UnknownKeyFails(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("frames_per_second: 30\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestParse_HealsInvalidFields(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(`
fps: 0
pull_span: -40
taunts: ["ok", ""]
tuning:
  blend: 3
  multi_touch_mode: sideways
  jerk_magnitude: 5
`))
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.FPS, cfg.FPS)
	assert.InDelta(t, def.PullSpan, cfg.PullSpan, 1e-9)
	assert.Equal(t, def.Taunts, cfg.Taunts)
	assert.InDelta(t, def.Tuning.Blend, cfg.Tuning.Blend, 1e-9)
	assert.Equal(t, def.Tuning.MultiTouchMode, cfg.Tuning.MultiTouchMode)
	// Valid overrides survive healing.
	assert.InDelta(t, 5.0, cfg.Tuning.JerkMagnitude, 1e-9)
	require.NoError(t, Validate(cfg))
}

func TestParse_CrossFieldRules(t *testing.T) {
	t.Parallel()

	// Trigger above max is reset to the default trigger, which fits the default max.
	cfg, err := Parse([]byte("tuning:\n  trigger_threshold: 900\n"))
	require.NoError(t, err)
	assert.InDelta(t, physics.DefaultTuning().TriggerThreshold, cfg.Tuning.TriggerThreshold, 1e-9)

	// A small max makes the default trigger invalid too, so the whole tuning falls back.
	cfg, err = Parse([]byte("tuning:\n  max: 100\n  trigger_threshold: 900\n"))
	require.NoError(t, err)
	assert.Equal(t, physics.DefaultTuning(), cfg.Tuning)
}

func TestValidate_ReportsYAMLNames(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Tuning.ResistanceBase = 0.99
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, validate.Fields(err), "resistance_base")
}

func TestWriteThenLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.FPS = 24
	cfg.Tuning.RefreshDuration = 3 * time.Second
	require.NoError(t, Write(path, cfg))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "refresh_duration: 3s")

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestExpandTilde(t *testing.T) {
	t.Parallel()

	p, err := expandTilde("/abs/path")
	require.NoError(t, err)
	assert.Equal(t, "/abs/path", p)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	p, err = expandTilde("~/x.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x.yaml"), p)
}
