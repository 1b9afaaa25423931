package utils_test

import (
	"testing"

	"pokemon-service/core/utils"

	"github.com/stretchr/testify/assert"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		name string
		in   string
		sep  string
		want string
	}{
		{"Lower", "water", "", "Water"},
		{"Upper", "FIRE", "", "Fire"},
		{"Already Canonical", "Grass", "", "Grass"},
		{"Whole String Ignores Hyphens", "solar-power", "", "Solar-power"},
		{"Segments", "solar-power", "-", "Solar-Power"},
		{"Mixed Segments", "LIGHTNING-rod", "-", "Lightning-Rod"},
		{"Single Segment", "overgrow", "-", "Overgrow"},
		{"Empty", "", "-", ""},
		{"Empty Segment", "a--b", "-", "A--B"},
		{"Non ASCII", "ÉCLAIR", "", "Éclair"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.Canonical(tt.in, tt.sep))
		})
	}
}

func TestCanonical_Idempotent(t *testing.T) {
	for _, in := range []string{"water", "SOLAR-power", "Static", "x"} {
		once := utils.Canonical(in, "-")
		assert.Equal(t, once, utils.Canonical(once, "-"))
	}
}
