package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTerrain(t *testing.T) {
	cases := map[string]string{
		"plains":    TerrainPlains,
		"Hills":     TerrainHills,
		" hill ":    TerrainHills,
		"mountain":  TerrainHills,
		"mountains": TerrainHills,
		"ALL":       TerrainAll,
		"any":       TerrainAll,
		"":          TerrainPlains,
		"desert":    TerrainPlains,
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizeTerrain(input), "input %q", input)
	}
}
