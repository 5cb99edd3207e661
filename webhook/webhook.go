// Package webhook notifies external endpoints when a batch finishes.
package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/use-agent/ldgen/models"
)

// EventSchemasGenerated is sent after a batch has been processed and stored.
const EventSchemasGenerated = "schemas.generated"

// SignatureHeader carries "sha256=<hex>" when a secret is configured.
const SignatureHeader = "X-Ldgen-Signature"

// Event is the payload sent to webhook endpoints.
type Event struct {
	Type      string      `json:"type"`
	BatchID   string      `json:"batch_id"`
	Timestamp int64       `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// Summary is the Data of a schemas.generated event.
type Summary struct {
	ID        string `json:"id"`
	Total     int    `json:"total"`
	Generated int    `json:"generated"`
	Failed    int    `json:"failed"`
}

// NewGeneratedEvent builds the schemas.generated event for b.
func NewGeneratedEvent(b *models.Batch) *Event {
	return &Event{
		Type:      EventSchemasGenerated,
		BatchID:   b.ID,
		Timestamp: time.Now().Unix(),
		Data: Summary{
			ID:        b.ID,
			Total:     b.Total,
			Generated: b.Generated,
			Failed:    b.Total - b.Generated,
		},
	}
}

// Sign returns the hex HMAC-SHA256 of body under secret.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Notifier delivers events with retries.
type Notifier struct {
	secret string
	client *http.Client
	delays []time.Duration
}

// DefaultDelays are the waits before each attempt: one immediate try and
// three retries.
var DefaultDelays = []time.Duration{0, 1 * time.Second, 5 * time.Second, 30 * time.Second}

// NewNotifier creates a Notifier that signs bodies with secret (unsigned
// when empty). A nil delays slice uses DefaultDelays.
func NewNotifier(secret string, delays []time.Duration) *Notifier {
	if delays == nil {
		delays = DefaultDelays
	}
	return &Notifier{
		secret: secret,
		client: &http.Client{Timeout: 10 * time.Second},
		delays: delays,
	}
}

// Deliver sends a webhook event synchronously.
func (n *Notifier) Deliver(ctx context.Context, url string, event *Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("webhook: marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Ldgen-Webhook/1.0")
	if n.secret != "" {
		req.Header.Set(SignatureHeader, "sha256="+Sign(n.secret, body))
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: deliver: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook: endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

// DeliverAsync sends event in the background, retrying per the notifier's
// delays. done, if non-nil, is closed when delivery finishes or gives up.
func (n *Notifier) DeliverAsync(url string, event *Event, done chan<- struct{}) {
	go func() {
		if done != nil {
			defer close(done)
		}
		for attempt, delay := range n.delays {
			if delay > 0 {
				time.Sleep(delay)
			}
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			err := n.Deliver(ctx, url, event)
			cancel()
			if err == nil {
				slog.Info("webhook delivered",
					"url", url,
					"event", event.Type,
					"batch_id", event.BatchID,
					"attempt", attempt+1,
				)
				return
			}
			slog.Warn("webhook delivery failed",
				"url", url,
				"event", event.Type,
				"batch_id", event.BatchID,
				"attempt", attempt+1,
				"error", err,
			)
		}
		slog.Error("webhook delivery exhausted all retries",
			"url", url,
			"event", event.Type,
			"batch_id", event.BatchID,
		)
	}()
}
