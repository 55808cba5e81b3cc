package validate

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type window struct {
	Low  int      `yaml:"low" validate:"gte=0"`
	Tags []string `yaml:"tags" validate:"dive,required"`
}

// span is only validated after its rule is registered; the validator caches rules per type.
type span struct {
	Low  int `yaml:"low"`
	High int `yaml:"high"`
}

func TestStruct_ReportsYAMLNames(t *testing.T) {
	err := Struct(window{Low: -1, Tags: []string{"a", ""}})
	require.Error(t, err)
	assert.ElementsMatch(t, []string{"low", "tags"}, Fields(err))
}

func TestRegisterStructRule(t *testing.T) {
	RegisterStructRule(func(sl validator.StructLevel) {
		s, ok := sl.Current().Interface().(span)
		if ok && s.High < s.Low {
			sl.ReportError(s.High, "high", "High", "gtefield", "low")
		}
	}, span{})

	require.NoError(t, Struct(span{Low: 1, High: 2}))
	err := Struct(span{Low: 5, High: 2})
	require.Error(t, err)
	assert.Equal(t, []string{"high"}, Fields(err))
}

func TestVar(t *testing.T) {
	require.NoError(t, Var("amplify", "oneof=amplify ease"))
	require.Error(t, Var("sideways", "oneof=amplify ease"))
}

func TestFields_NonValidationError(t *testing.T) {
	assert.Nil(t, Fields(errors.New("boom")))
	assert.Nil(t, Fields(nil))
}
