// Package ga implements the two evolutionary searches behind the
// optimization endpoints: blind-spot discovery and coverage improvement.
// Both operate on camera coordinates only; coverage is modeled as a
// fixed-radius disk around each camera.
package ga

import "github.com/c5sim/coverage-sim-go/internal/spatial"

// TierMetrics is the tiered coverage breakdown over an evaluation grid.
// All values are percentages of grid points.
type TierMetrics struct {
	TotalCoverage float64 // covered by at least one camera
	NoCoverage    float64
	Tier1         float64 // exactly one camera
	Tier2         float64 // exactly two cameras
	Tier3Plus     float64 // three or more cameras
}

// ToMap renders the metrics with their wire keys
func (m TierMetrics) ToMap() map[string]float64 {
	return map[string]float64{
		"cobertura_total": m.TotalCoverage,
		"sin_cobertura":   m.NoCoverage,
		"nivel_1":         m.Tier1,
		"nivel_2":         m.Tier2,
		"nivel_3_mas":     m.Tier3Plus,
	}
}

// CoverageCount returns how many cameras cover point p within radiusM
func CoverageCount(p spatial.Point, cameras []spatial.Point, radiusM float64) int {
	count := 0
	for _, c := range cameras {
		if spatial.Distance(p, c) <= radiusM {
			count++
		}
	}
	return count
}

// ComputeTierMetrics classifies every evaluation point by how many cameras
// cover it. An empty grid counts as fully uncovered.
func ComputeTierMetrics(evalPoints, cameras []spatial.Point, radiusM float64) TierMetrics {
	if len(evalPoints) == 0 {
		return TierMetrics{NoCoverage: 100.0}
	}

	var c0, c1, c2, c3 int
	for _, p := range evalPoints {
		switch k := CoverageCount(p, cameras, radiusM); {
		case k <= 0:
			c0++
		case k == 1:
			c1++
		case k == 2:
			c2++
		default:
			c3++
		}
	}

	n := float64(len(evalPoints))
	noCov := float64(c0) / n * 100.0

	return TierMetrics{
		TotalCoverage: 100.0 - noCov,
		NoCoverage:    noCov,
		Tier1:         float64(c1) / n * 100.0,
		Tier2:         float64(c2) / n * 100.0,
		Tier3Plus:     float64(c3) / n * 100.0,
	}
}
