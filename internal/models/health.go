package models

// HealthResponse readiness probe response structure
// @Description Health check API response data structure
type HealthResponse struct {
	Version   string  `json:"version" example:"1.0.0"`
	StartTime string  `json:"startTime" example:"2024-01-01T10:00:00Z"`
	Status    string  `json:"status" example:"UP"`
	Uptime    string  `json:"uptime" example:"1h30m45s"`
	Metrics   Metrics `json:"metrics"`
}

// Metrics key indicator structure
// @Description System key indicator data structure
type Metrics struct {
	TotalRequests       int64 `json:"totalRequests" example:"1000"`
	ErrorRequests       int64 `json:"errorRequests" example:"5"`
	TotalComponents     int   `json:"totalComponents" example:"5"`
	UnhealthyComponents int   `json:"unhealthyComponents" example:"1"`
}
