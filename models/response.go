package models

import "github.com/use-agent/ldgen/schema"

// RenderResponse is the response for POST /api/v1/schemas/render.
type RenderResponse struct {
	Schema  schema.Record `json:"schema"`
	Snippet string        `json:"snippet"`
}

// ErrorResponse wraps an ErrorDetail for non-2xx replies.
type ErrorResponse struct {
	Error *ErrorDetail `json:"error"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status        string `json:"status"` // "healthy"
	Uptime        string `json:"uptime"`
	Engine        string `json:"engine"`
	StoredBatches int    `json:"stored_batches"`
	Version       string `json:"version"`
}
