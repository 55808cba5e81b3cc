package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ensigniasec/pullfight/internal/physics"
	"github.com/ensigniasec/pullfight/internal/validate"
)

// DefaultPath is where the config file is looked up when --config is not given.
const DefaultPath = "~/.config/pullfight/config.yaml"

// Config is the on-disk configuration. Every field is optional; missing keys keep defaults.
type Config struct {
	FPS        int     `yaml:"fps" json:"fps" validate:"gte=1,lte=240"`
	CellPixels float64 `yaml:"cell_pixels" json:"cell_pixels" validate:"gt=0"`
	// PullSpan is the pointer travel of a drag across the whole feed; short
	// terminals scale rows up so a full-height drag still covers it.
	PullSpan float64        `yaml:"pull_span" json:"pull_span" validate:"gt=0"`
	Taunts   []string       `yaml:"taunts" json:"taunts" validate:"dive,required"`
	Tuning   physics.Tuning `yaml:"tuning" json:"tuning"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		FPS:        60,
		CellPixels: 16,
		PullSpan:   1500,
		Taunts:     append([]string(nil), physics.DefaultTaunts...),
		Tuning:     physics.DefaultTuning(),
	}
}

//nolint:gochecknoglobals // One-time registration on the shared validator.
var rulesOnce sync.Once

func registerRules() {
	rulesOnce.Do(func() {
		validate.RegisterStructRule(tuningRule, physics.Tuning{})
	})
}

// tuningRule checks relations between thresholds that field tags cannot express.
func tuningRule(sl validator.StructLevel) {
	t, ok := sl.Current().Interface().(physics.Tuning)
	if !ok {
		return
	}
	if t.TriggerThreshold > t.Max {
		sl.ReportError(t.TriggerThreshold, "trigger_threshold", "TriggerThreshold", "ltefield", "max")
	}
	if t.VoidAppearThreshold >= t.TriggerThreshold {
		sl.ReportError(t.VoidAppearThreshold, "void_appear_threshold", "VoidAppearThreshold", "ltfield", "trigger_threshold")
	}
	if t.ResistanceBase >= t.ResistanceCeiling {
		sl.ReportError(t.ResistanceBase, "resistance_base", "ResistanceBase", "ltfield", "resistance_ceiling")
	}
}

// Validate checks cfg against field tags and cross-field rules.
func Validate(cfg Config) error {
	registerRules()
	return validate.Struct(cfg)
}

// Load reads the config file at path. A missing file yields defaults.
// Invalid values are replaced by their defaults with a warning rather than failing.
func Load(path string) (Config, error) {
	expanded, err := expandTilde(path)
	if err != nil {
		return Config{}, err
	}
	logrus.Debug("Loading config file from: ", expanded)
	data, err := os.ReadFile(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			logrus.Debug("No config file found; using defaults")
			return Default(), nil
		}
		return Config{}, err
	}
	return Parse(data)
}

// Parse decodes YAML on top of the defaults and self-heals invalid fields.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		fields := validate.Fields(err)
		if fields == nil {
			return Config{}, err
		}
		logrus.Warnf("Invalid config values %v; falling back to defaults for them.", fields)
		cfg = heal(cfg, fields)
		if err := Validate(cfg); err != nil {
			logrus.Warn("Tuning still inconsistent after healing; using default tuning.")
			cfg.Tuning = physics.DefaultTuning()
		}
	}
	return cfg, nil
}

// Write encodes cfg as YAML, creating parent directories as needed.
func Write(path string, cfg Config) error {
	expanded, err := expandTilde(path)
	if err != nil {
		return err
	}
	logrus.Debug("Writing config file to: ", expanded)
	if err := os.MkdirAll(filepath.Dir(expanded), 0o700); err != nil {
		return err
	}
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(expanded, data, 0o600)
}

// Marshal encodes cfg in the config file format.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// heal resets every field whose yaml name is listed to its default value.
func heal(cfg Config, fields []string) Config {
	bad := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		bad[f] = struct{}{}
	}
	def := Default()
	resetFields(reflect.ValueOf(&cfg).Elem(), reflect.ValueOf(def), bad)
	return cfg
}

func resetFields(dst, def reflect.Value, bad map[string]struct{}) {
	typ := dst.Type()
	for i := range typ.NumField() {
		f := dst.Field(i)
		if f.Kind() == reflect.Struct {
			resetFields(f, def.Field(i), bad)
			continue
		}
		name := typ.Field(i).Tag.Get("yaml")
		if _, ok := bad[name]; ok && f.CanSet() {
			f.Set(def.Field(i))
		}
	}
}

// expandTilde expands the tilde in a path to the user's home directory.
func expandTilde(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}
