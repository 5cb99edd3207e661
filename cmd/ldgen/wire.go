package main

import (
	"fmt"

	"github.com/use-agent/ldgen/batch"
	"github.com/use-agent/ldgen/config"
	"github.com/use-agent/ldgen/engine"
	"github.com/use-agent/ldgen/title"
	"golang.org/x/time/rate"
)

// newDriver builds the fetch engine, title resolver and batch driver from
// cfg. It returns the engine name for health reporting.
func newDriver(cfg *config.Config, concurrency int) (*batch.Driver, string, error) {
	eng, err := engine.New(cfg.Fetch)
	if err != nil {
		return nil, "", err
	}

	ext, err := title.NewExtractor(cfg.Fetch.TitleSelector)
	if err != nil {
		return nil, "", fmt.Errorf("title selector %q: %w", cfg.Fetch.TitleSelector, err)
	}

	opts := []title.Option{
		title.WithExtractor(ext),
		title.WithTimeout(cfg.Fetch.Timeout),
	}
	if cfg.Fetch.RelayRPS > 0 {
		opts = append(opts, title.WithLimiter(rate.NewLimiter(rate.Limit(cfg.Fetch.RelayRPS), cfg.Fetch.RelayBurst)))
	}

	resolver := title.NewResolver(eng, opts...)
	return batch.NewDriver(resolver, concurrency), eng.Name(), nil
}
