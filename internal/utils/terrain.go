package utils

import "strings"

// Terrain values a vehicle can be rated for. "all" vehicles satisfy any
// terrain filter; the search query carries that rule.
const (
	TerrainPlains = "plains"
	TerrainHills  = "hills"
	TerrainAll    = "all"
)

// NormalizeTerrain maps free-form terrain input onto the known values.
// Unknown input falls back to plains.
func NormalizeTerrain(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case TerrainHills, "hill", "mountain", "mountains":
		return TerrainHills
	case TerrainAll, "any":
		return TerrainAll
	default:
		return TerrainPlains
	}
}
