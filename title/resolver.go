// Package title resolves a display title for a page URL: the page's own
// <title> when it can be fetched, a title derived from the URL path otherwise.
package title

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/use-agent/ldgen/engine"
	"golang.org/x/time/rate"
)

var (
	// ErrNoTitle means the fetched document had no non-empty title.
	ErrNoTitle = errors.New("title: document has no title")

	// ErrNoEngine means the resolver was built without a fetch engine.
	ErrNoEngine = errors.New("title: no fetch engine configured")
)

// Resolver fetches page titles and falls back to Synthesize.
// It is safe for concurrent use and keeps no per-URL state.
type Resolver struct {
	engine    engine.Engine
	extractor *Extractor
	limiter   *rate.Limiter
	timeout   time.Duration
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLimiter throttles fetches. Each Resolve waits for one token.
func WithLimiter(l *rate.Limiter) Option {
	return func(r *Resolver) { r.limiter = l }
}

// WithTimeout bounds each fetch. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) { r.timeout = d }
}

// WithExtractor replaces the default <title> extractor.
func WithExtractor(x *Extractor) Option {
	return func(r *Resolver) { r.extractor = x }
}

// NewResolver creates a Resolver around e. A nil engine makes every
// resolution use the URL-derived title.
func NewResolver(e engine.Engine, opts ...Option) *Resolver {
	r := &Resolver{engine: e}
	for _, opt := range opts {
		opt(r)
	}
	if r.extractor == nil {
		// DefaultSelector always compiles.
		r.extractor, _ = NewExtractor(DefaultSelector)
	}
	return r
}

// Resolve returns a title for pageURL. It never fails: any fetch or parse
// problem is logged and replaced by Synthesize(pageURL).
func (r *Resolver) Resolve(ctx context.Context, pageURL string) string {
	t, err := r.fetchTitle(ctx, pageURL)
	if err != nil {
		slog.Warn("title fetch failed, deriving title from URL",
			"url", pageURL, "error", err,
		)
		return Synthesize(pageURL)
	}
	slog.Debug("title fetched", "url", pageURL, "title", t)
	return t
}

// fetchTitle performs exactly one fetch, without retries.
func (r *Resolver) fetchTitle(ctx context.Context, pageURL string) (string, error) {
	if r.engine == nil {
		return "", ErrNoEngine
	}
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("title: wait for fetch slot: %w", err)
		}
	}

	res, err := r.engine.Fetch(ctx, &engine.FetchRequest{URL: pageURL, Timeout: r.timeout})
	if err != nil {
		return "", err
	}

	t := r.extractor.Extract(res.HTML)
	if t == "" {
		return "", ErrNoTitle
	}
	return t, nil
}
