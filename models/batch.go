package models

import "github.com/use-agent/ldgen/schema"

// Outcome statuses.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Outcome is the result for one input line of a batch.
type Outcome struct {
	// Status is "success" or "failure".
	Status string `json:"status"`

	// Input is the trimmed input line.
	Input string `json:"input"`

	// URL is the validated page URL, verbatim. Empty on failure.
	URL string `json:"url,omitempty"`

	// Title is the resolved (or edited) page title.
	Title string `json:"title,omitempty"`

	// Number is the 1-based position among successful outcomes. Zero on failure.
	Number int `json:"number,omitempty"`

	// Schema is the structured-data record.
	Schema *schema.Record `json:"schema,omitempty"`

	// Snippet is the serialized record wrapped in a ld+json script block.
	Snippet string `json:"snippet,omitempty"`

	// Error is populated only when Status is "failure".
	Error *ErrorDetail `json:"error,omitempty"`
}

// Succeeded reports whether the outcome carries a schema.
func (o *Outcome) Succeeded() bool {
	return o.Status == StatusSuccess
}

// Batch is the full result of one generation run.
type Batch struct {
	ID        string    `json:"id,omitempty"`
	Total     int       `json:"total"`
	Generated int       `json:"generated"`
	Outcomes  []Outcome `json:"outcomes"`
	CreatedAt int64     `json:"created_at,omitempty"` // unix timestamp
}

// Find returns the successful outcome with the given number.
func (b *Batch) Find(number int) (*Outcome, bool) {
	for i := range b.Outcomes {
		if b.Outcomes[i].Succeeded() && b.Outcomes[i].Number == number {
			return &b.Outcomes[i], true
		}
	}
	return nil, false
}
