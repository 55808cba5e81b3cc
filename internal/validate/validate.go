package validate

// This package adds struct and field validation as a thin wrapper around the go-playground/validator package.
//
// e.g. internal/physics/tuning.go
//   type Tuning struct {
//       ...
//       Blend          float64        `yaml:"blend" validate:"gt=0,lte=1"`
//       MultiTouchMode MultiTouchMode `yaml:"multi_touch_mode" validate:"oneof=amplify ease"`
//   }
//
// Cross-field rules that tags cannot express are registered with RegisterStructRule.

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

//nolint:gochecknoglobals // Shared validator singleton.
var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
	rulesMu       sync.Mutex
)

// get returns a process-wide singleton of the validator.
func get() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New(validator.WithRequiredStructEnabled())
		// Report yaml key names so messages match what users write in config files.
		validatorInst.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validatorInst
}

// Struct validates a struct using the shared validator instance.
func Struct(v any) error {
	return get().Struct(v)
}

// Var validates a single variable against the provided tag constraints.
func Var(field any, tag string) error {
	return get().Var(field, tag)
}

// RegisterStructRule attaches a struct-level rule for the type of example.
// The rule reports failures through sl.ReportError.
func RegisterStructRule(rule validator.StructLevelFunc, example any) {
	rulesMu.Lock()
	defer rulesMu.Unlock()
	get().RegisterStructValidation(rule, example)
}

// Fields returns the names of fields that failed validation, or nil when err is
// not a validation error. Slice indexes are dropped, so "taunts[2]" reports "taunts".
func Fields(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name, _, _ := strings.Cut(fe.Field(), "[")
		out = append(out, name)
	}
	return out
}
