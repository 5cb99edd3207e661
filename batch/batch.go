// Package batch turns a list of input lines into ordered schema outcomes.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/use-agent/ldgen/models"
	"github.com/use-agent/ldgen/schema"
	"github.com/use-agent/ldgen/title"
	"golang.org/x/sync/errgroup"
)

// MaxURLs is the largest batch accepted.
const MaxURLs = 100

// Batch-level errors. Compare with errors.Is.
var (
	ErrEmptyBatch = models.NewSchemaError(
		models.ErrCodeEmptyBatch, "enter at least one URL", nil)
	ErrBatchTooLarge = models.NewSchemaError(
		models.ErrCodeBatchTooLarge, fmt.Sprintf("enter at most %d URLs", MaxURLs), nil)
)

// TitleResolver returns a display title for a valid URL. Implementations
// must not fail; title.Resolver is the production implementation.
type TitleResolver interface {
	Resolve(ctx context.Context, pageURL string) string
}

// Driver runs batches against a TitleResolver.
type Driver struct {
	resolver    TitleResolver
	concurrency int
}

// NewDriver creates a Driver. concurrency <= 1 processes items one at a time.
func NewDriver(resolver TitleResolver, concurrency int) *Driver {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Driver{resolver: resolver, concurrency: concurrency}
}

// WithConcurrency returns a copy of d that fetches up to n titles at once.
func (d *Driver) WithConcurrency(n int) *Driver {
	return NewDriver(d.resolver, n)
}

// Concurrency reports the driver's fan-out limit.
func (d *Driver) Concurrency() int { return d.concurrency }

// SplitLines splits pasted text into raw lines. Empty text has no lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// Clean trims every line and drops the empty ones.
func Clean(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if t := strings.TrimSpace(l); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ProcessAll validates, resolves and builds a schema for every non-empty
// line. Empty input and more than MaxURLs lines are batch-level errors and
// nothing is resolved. Invalid URLs become failure outcomes; they never
// abort the batch. Outcomes keep input order and successes are numbered
// from 1.
func (d *Driver) ProcessAll(ctx context.Context, lines []string) (*models.Batch, error) {
	inputs := Clean(lines)
	if len(inputs) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(inputs) > MaxURLs {
		return nil, ErrBatchTooLarge
	}

	start := time.Now()
	outcomes := make([]models.Outcome, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)
	for i, in := range inputs {
		g.Go(func() error {
			outcomes[i] = d.processOne(gctx, in)
			return nil
		})
	}
	// Items never return errors; Wait only joins the goroutines.
	_ = g.Wait()

	generated := Number(outcomes)

	slog.Info("batch processed",
		"total", len(inputs),
		"generated", generated,
		"failed", len(inputs)-generated,
		"duration", time.Since(start).Round(time.Millisecond).String(),
	)

	return &models.Batch{
		Total:     len(inputs),
		Generated: generated,
		Outcomes:  outcomes,
	}, nil
}

// processOne handles a single trimmed line.
func (d *Driver) processOne(ctx context.Context, input string) models.Outcome {
	if _, err := title.ParseURL(input); err != nil {
		slog.Debug("rejecting input line", "input", input, "error", err)
		return models.Outcome{
			Status: models.StatusFailure,
			Input:  input,
			Error: &models.ErrorDetail{
				Code:    models.ErrCodeInvalidURL,
				Message: "invalid URL",
			},
		}
	}

	t := d.resolver.Resolve(ctx, input)
	return Success(input, t)
}

// Success builds a successful outcome for url and title. Number is left for
// the caller to assign.
func Success(pageURL, pageTitle string) models.Outcome {
	rec, snippet := schema.Build(pageURL, pageTitle)
	return models.Outcome{
		Status:  models.StatusSuccess,
		Input:   pageURL,
		URL:     pageURL,
		Title:   pageTitle,
		Schema:  &rec,
		Snippet: snippet,
	}
}

// Retitle rebuilds a successful outcome's schema for a new title, keeping
// alternateName in sync with the displayed title.
func Retitle(o *models.Outcome, newTitle string) {
	rec, snippet := schema.Build(o.URL, newTitle)
	o.Title = newTitle
	o.Schema = &rec
	o.Snippet = snippet
}

// Number assigns 1-based numbers to successful outcomes in order, clears the
// number of failures, and returns the success count.
func Number(outcomes []models.Outcome) int {
	n := 0
	for i := range outcomes {
		if outcomes[i].Succeeded() {
			n++
			outcomes[i].Number = n
		} else {
			outcomes[i].Number = 0
		}
	}
	return n
}
