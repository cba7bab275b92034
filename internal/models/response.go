package models

// DetailResponse is the body of action endpoints that return no resource.
type DetailResponse struct {
	Detail string `json:"detail"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}
