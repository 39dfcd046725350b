package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fp(v float64) *float64 { return &v }

func TestValidNutrient(t *testing.T) {
	tests := []struct {
		name string
		val  *float64
		want bool
	}{
		{"absent", nil, true},
		{"zero", fp(0), true},
		{"positive", fp(42.5), true},
		{"negative", fp(-1), false},
		{"nan", fp(math.NaN()), false},
		{"positive infinity", fp(math.Inf(1)), false},
		{"negative infinity", fp(math.Inf(-1)), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidNutrient(tc.val))
		})
	}
}

func TestNutrientValueDefaultsAbsentToZero(t *testing.T) {
	assert.Equal(t, 0.0, NutrientValue(nil))
	assert.Equal(t, 12.5, NutrientValue(fp(12.5)))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-01")
	assert.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, 0, d.Hour())

	_, err = ParseDate("01/01/2024")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}
