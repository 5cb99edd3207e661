package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// RelayEngine fetches pages through a CORS relay that returns the target's
// HTML embedded in a JSON payload (allorigins "/get" format):
//
//	GET {endpoint}?url={target}
//	{"contents": "<html>...", "status": {"url": "...", "http_code": 200}}
type RelayEngine struct {
	endpoint string
	client   *http.Client
}

// relayPayload is the subset of the relay response we read.
type relayPayload struct {
	Contents *string `json:"contents"`
	Status   struct {
		URL         string `json:"url"`
		ContentType string `json:"content_type"`
		HTTPCode    int    `json:"http_code"`
	} `json:"status"`
}

// ErrNoContents is returned when the relay answers without a contents field.
var ErrNoContents = errors.New("relay_engine: response has no contents")

// NewRelayEngine creates a RelayEngine for the given relay endpoint.
// Pass nil to use a default http.Client.
func NewRelayEngine(endpoint string, client *http.Client) *RelayEngine {
	if client == nil {
		client = &http.Client{}
	}
	return &RelayEngine{endpoint: endpoint, client: client}
}

func (e *RelayEngine) Name() string { return ModeRelay }

func (e *RelayEngine) Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error) {
	relayURL, err := e.relayURL(req.URL)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, req.Timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, relayURL, nil)
	if err != nil {
		return nil, fmt.Errorf("relay_engine: build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("relay_engine: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("relay_engine: relay returned status %d for %s", resp.StatusCode, req.URL)
	}

	var payload relayPayload
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("relay_engine: decode payload: %w", err)
	}
	if payload.Contents == nil {
		return nil, ErrNoContents
	}

	finalURL := payload.Status.URL
	if finalURL == "" {
		finalURL = req.URL
	}

	return &FetchResult{
		HTML:       *payload.Contents,
		StatusCode: payload.Status.HTTPCode,
		FinalURL:   finalURL,
		EngineName: e.Name(),
	}, nil
}

// relayURL builds the relay request URL with the target in the "url" param.
func (e *RelayEngine) relayURL(target string) (string, error) {
	u, err := url.Parse(e.endpoint)
	if err != nil {
		return "", fmt.Errorf("relay_engine: parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("url", target)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
