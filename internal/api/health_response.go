package api

// swagger:model api.HealthResponse
type HealthResponse struct {
	Status    string `json:"status" example:"ok"`
	Timestamp string `json:"timestamp" example:"2025-05-01T15:04:05.000Z"`
}

// swagger:model api.ReadyResponse
type ReadyResponse struct {
	Status string `json:"status" example:"ready"`
}
