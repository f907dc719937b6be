package webapi

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is returned for errors. Details lists schema violations
// when a submitted record is rejected.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    int      `json:"code"`
	Details []string `json:"details,omitempty"`
}
