package api

type (
	// ErrorResponse is returned by the API server when a request fails
	// outside of a workflow run
	ErrorResponse struct {
		Error  string `json:"error"`
		Status int    `json:"status"`
	}

	// HealthResponse provides service health information
	HealthResponse struct {
		Service string `json:"service"`
		Version string `json:"version"`
		Status  string `json:"status"`
	}
)

const (
	// HealthStatusOK is reported when the server is accepting requests
	HealthStatusOK = "ok"
)
