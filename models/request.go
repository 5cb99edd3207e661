package models

import "strings"

// GenerateRequest is the payload for POST /api/v1/schemas.
//
// Either URLs or Text must be provided. Text is split into lines the way a
// pasted textarea would be; when both are set, URLs wins.
type GenerateRequest struct {
	URLs []string `json:"urls,omitempty"`
	Text string   `json:"text,omitempty"`

	// Concurrency is the number of titles fetched in parallel.
	// Default: 1 (sequential). Capped by server configuration.
	Concurrency int `json:"concurrency,omitempty" binding:"omitempty,min=1,max=10"`

	// WebhookURL receives a "schemas.generated" event when the batch is done.
	WebhookURL string `json:"webhook_url,omitempty" binding:"omitempty,url"`
}

// Lines returns the raw, untrimmed input lines of the request.
func (r *GenerateRequest) Lines() []string {
	if len(r.URLs) > 0 {
		return r.URLs
	}
	if r.Text == "" {
		return nil
	}
	return strings.Split(r.Text, "\n")
}

// Defaults applies default values to unset fields.
func (r *GenerateRequest) Defaults() {
	if r.Concurrency == 0 {
		r.Concurrency = 1
	}
}

// RenderRequest is the payload for POST /api/v1/schemas/render.
type RenderRequest struct {
	URL   string `json:"url" binding:"required"`
	Title string `json:"title"`
}

// RetitleRequest is the payload for PUT /api/v1/schemas/:id/items/:number/title.
type RetitleRequest struct {
	Title string `json:"title"`
}

// ExportRequest is the payload for POST /api/v1/export.
type ExportRequest struct {
	// Format is "doc" (default) or "markdown".
	Format string `json:"format,omitempty" binding:"omitempty,oneof=doc markdown"`

	// Items are numbered in order, starting at 1.
	Items []ExportItem `json:"items" binding:"dive"`
}

// ExportItem is one displayed item sent back for export.
type ExportItem struct {
	URL   string `json:"url" binding:"required"`
	Title string `json:"title"`
}
