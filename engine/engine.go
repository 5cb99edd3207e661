package engine

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/use-agent/ldgen/config"
)

// Engine is the interface that all fetch engines must implement.
type Engine interface {
	// Name returns the engine identifier ("relay" or "direct").
	Name() string

	// Fetch retrieves the raw HTML for the given request. Any transport,
	// status or decoding problem is reported as an error; callers never
	// retry.
	Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error)
}

// FetchRequest contains everything an engine needs to fetch a page.
type FetchRequest struct {
	URL     string
	Timeout time.Duration
}

// FetchResult is the output of a successful engine fetch.
type FetchResult struct {
	HTML       string
	StatusCode int
	FinalURL   string
	EngineName string
}

// Fetch modes accepted by New.
const (
	ModeRelay  = "relay"
	ModeDirect = "direct"
)

// maxBody caps every response body read by an engine.
const maxBody = 10 << 20

// New builds the engine selected by cfg.Mode.
func New(cfg config.FetchConfig) (Engine, error) {
	switch cfg.Mode {
	case ModeRelay, "":
		return NewRelayEngine(cfg.RelayURL, &http.Client{}), nil
	case ModeDirect:
		return NewHTTPEngine(cfg.Proxy), nil
	default:
		return nil, fmt.Errorf("engine: unknown fetch mode %q", cfg.Mode)
	}
}

// withTimeout derives a context bounded by d when d > 0.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}
