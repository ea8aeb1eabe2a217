package backend

import (
	"encoding/json"
	"math"

	"github.com/c5sim/coverage-sim-go/internal/models"
)

// Endpoint paths
const (
	PathHealth            = "/api/health"
	PathCameras           = "/api/camaras"
	PathEvaluateSimulated = "/api/cobertura/camara-simulada"
	PathSaveGood          = "/api/camaras-propuestas/guardar-buenas"
	PathBlindSpots        = "/api/ag/puntos-ciegos"
	PathImproveCoverage   = "/api/ga/mejorar-cobertura"
)

// coverageFieldCandidates are the response keys tried, in priority order,
// for the evaluated coverage percentage. This is a compatibility shim over
// backend versions that named the field differently; the backend may
// eventually settle on one name and the list collapses to it.
var coverageFieldCandidates = []string{
	"coverage",
	"cobertura",
	"porcentaje",
	"porcentaje_cobertura",
	"valor",
}

// EvalResult is the parsed outcome of a coverage evaluation
type EvalResult struct {
	Coverage float64
	Delta    *float64 // absent when the backend sent none
}

// ParseEvalResponse extracts the coverage percentage (first finite
// candidate field wins) and the optional improvement delta. ok is false
// when no candidate field holds a finite number.
func ParseEvalResponse(body []byte) (EvalResult, bool) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return EvalResult{}, false
	}

	coverage, found := firstFinite(raw, coverageFieldCandidates)
	if !found {
		return EvalResult{}, false
	}

	result := EvalResult{Coverage: coverage}
	if d, ok := finiteField(raw, "delta"); ok {
		result.Delta = &d
	}
	return result, true
}

func firstFinite(raw map[string]json.RawMessage, candidates []string) (float64, bool) {
	for _, name := range candidates {
		if v, ok := finiteField(raw, name); ok {
			return v, true
		}
	}
	return 0, false
}

func finiteField(raw map[string]json.RawMessage, name string) (float64, bool) {
	msg, ok := raw[name]
	if !ok {
		return 0, false
	}
	var v float64
	if err := json.Unmarshal(msg, &v); err != nil {
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseBlindSpots decodes the blind-spot search response. An empty array
// is a valid outcome, returned as an empty non-nil slice.
func ParseBlindSpots(body []byte) ([]models.BlindSpot, bool) {
	var spots []models.BlindSpot
	if err := json.Unmarshal(body, &spots); err != nil {
		return nil, false
	}
	if spots == nil {
		spots = []models.BlindSpot{}
	}
	for _, s := range spots {
		if !finite(s.Latitude) || !finite(s.Longitude) || !finite(s.Fitness) {
			return nil, false
		}
	}
	return spots, true
}

// improveWire mirrors the improve-coverage response with pointer fields so
// an absent camaras_nuevas is distinguishable from an empty one
type improveWire struct {
	NewCameras *[]models.NewCamera `json:"camaras_nuevas"`
	Fitness    *float64            `json:"fitness"`
	Metrics    map[string]float64  `json:"metricas"`
}

// ImproveResult is the parsed outcome of a coverage-improvement search
type ImproveResult struct {
	NewCameras []models.NewCamera
	Fitness    float64
	Metrics    map[string]float64
}

// ParseImproveResponse decodes the improve-coverage response. The camera
// array and a finite fitness are mandatory; a response without them is a
// data-contract violation, not an empty result.
func ParseImproveResponse(body []byte) (ImproveResult, bool) {
	var wire improveWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return ImproveResult{}, false
	}
	if wire.NewCameras == nil || wire.Fitness == nil || !finite(*wire.Fitness) {
		return ImproveResult{}, false
	}
	for _, cam := range *wire.NewCameras {
		if !finite(cam.Latitude) || !finite(cam.Longitude) {
			return ImproveResult{}, false
		}
	}

	metrics := wire.Metrics
	if metrics == nil {
		metrics = map[string]float64{}
	}
	return ImproveResult{
		NewCameras: *wire.NewCameras,
		Fitness:    *wire.Fitness,
		Metrics:    metrics,
	}, true
}

// ParseCameras decodes the registered-camera list
func ParseCameras(body []byte) ([]models.Camera, bool) {
	var cameras []models.Camera
	if err := json.Unmarshal(body, &cameras); err != nil {
		return nil, false
	}
	return cameras, true
}

// SaveGoodPayload is the persist request body
type SaveGoodPayload struct {
	Cameras []models.ProposedCameraCreate `json:"camaras"`
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
