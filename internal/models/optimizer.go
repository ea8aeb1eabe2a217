package models

// BlindSpot is one point the blind-spot search ranked as under-covered
type BlindSpot struct {
	Latitude  float64 `json:"latitud"`
	Longitude float64 `json:"longitud"`
	Fitness   float64 `json:"fitness"`
}

// CoverageGARequest configures the coverage-improvement search.
// Defaults are deliberately light so a request cannot hang the caller;
// they mirror the operator-facing "fast mode" of the optimizer.
type CoverageGARequest struct {
	NewCameras    int     `json:"n_camaras_nuevas"`
	RadiusM       float64 `json:"radio_m"`
	GridStepM     float64 `json:"step_grid_m"`
	GridMaxPoints int     `json:"grid_max_points"`

	PopulationSize int     `json:"tam_poblacion"`
	Generations    int     `json:"generaciones"`
	Elitism        int     `json:"elitismo"`
	TournamentK    int     `json:"k_torneo"`
	BLXAlpha       float64 `json:"alpha_blx"`

	PenalizeOvercoverage bool    `json:"penalizar_sobrecobertura"`
	PenalizeProximity    bool    `json:"penalizar_cercania"`
	MinDistBetweenNewM   float64 `json:"min_dist_entre_nuevas_m"`
	MinDistToExistingM   float64 `json:"min_dist_a_existentes_m"`
	ProximityWeight      float64 `json:"peso_cercania"`

	SeedWithBlindSpots bool `json:"usar_puntos_ciegos_seed"`
	BlindSpotSeeds     int  `json:"n_puntos_ciegos_seed"`
}

// DefaultCoverageGARequest returns the fast-mode defaults
func DefaultCoverageGARequest() CoverageGARequest {
	return CoverageGARequest{
		NewCameras:           8,
		RadiusM:              120.0,
		GridStepM:            250.0,
		GridMaxPoints:        1500,
		PopulationSize:       25,
		Generations:          20,
		Elitism:              2,
		TournamentK:          3,
		BLXAlpha:             0.5,
		PenalizeOvercoverage: true,
		PenalizeProximity:    true,
		MinDistBetweenNewM:   220.0,
		MinDistToExistingM:   120.0,
		ProximityWeight:      12.0,
		SeedWithBlindSpots:   false,
		BlindSpotSeeds:       8,
	}
}

// NewCamera is one proposed placement in a coverage-improvement result
type NewCamera struct {
	Latitude  float64 `json:"latitud"`
	Longitude float64 `json:"longitud"`
}

// CoverageGAResponse is the coverage-improvement search result
type CoverageGAResponse struct {
	NewCameras []NewCamera        `json:"camaras_nuevas"`
	Fitness    float64            `json:"fitness"`
	Metrics    map[string]float64 `json:"metricas"`
}
