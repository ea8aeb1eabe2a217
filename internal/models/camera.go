package models

// Camera is a registered surveillance camera
type Camera struct {
	ID          int64   `json:"id"`
	Latitude    float64 `json:"latitud"`
	Longitude   float64 `json:"longitud"`
	Type        *string `json:"tipo"`
	Description *string `json:"descripcion"`
}

// CameraCreate is the payload for registering a camera
type CameraCreate struct {
	Latitude    float64 `json:"latitud" binding:"required"`
	Longitude   float64 `json:"longitud" binding:"required"`
	Type        *string `json:"tipo"`
	Description *string `json:"descripcion"`
}

// ProposedCamera is a persisted camera proposal with its evaluated coverage
type ProposedCamera struct {
	ID          int64   `json:"id"`
	Latitude    float64 `json:"latitud"`
	Longitude   float64 `json:"longitud"`
	Coverage    float64 `json:"cobertura"`
	Origin      *string `json:"origen"`
	Description *string `json:"descripcion"`
}

// ProposedCameraCreate is one entry of a proposal batch
type ProposedCameraCreate struct {
	Latitude    float64 `json:"latitud"`
	Longitude   float64 `json:"longitud"`
	Coverage    float64 `json:"cobertura"`
	Origin      *string `json:"origen"`
	Description *string `json:"descripcion"`
}

// ProposalBatch wraps the camaras array of a save request
type ProposalBatch struct {
	Cameras []ProposedCameraCreate `json:"camaras"`
}

// SimulatedCameraIn is the evaluate-coverage request body
type SimulatedCameraIn struct {
	Latitude  float64 `json:"latitud"`
	Longitude float64 `json:"longitud"`
}

// CoverageEval is the evaluate-coverage response: total coverage with the
// proposal included, and the improvement over the current deployment
type CoverageEval struct {
	Coverage float64 `json:"coverage"`
	Delta    float64 `json:"delta"`
}
