package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/use-agent/ldgen/models"
)

func TestNewGeneratedEvent(t *testing.T) {
	ev := NewGeneratedEvent(&models.Batch{ID: "batch-1", Total: 3, Generated: 2})
	if ev.Type != EventSchemasGenerated || ev.BatchID != "batch-1" {
		t.Errorf("event = %+v", ev)
	}
	s, ok := ev.Data.(Summary)
	if !ok {
		t.Fatalf("Data type = %T, want Summary", ev.Data)
	}
	if s.Total != 3 || s.Generated != 2 || s.Failed != 1 {
		t.Errorf("summary = %+v", s)
	}
}

func TestDeliver_Signed(t *testing.T) {
	var gotSig string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSig = r.Header.Get(SignatureHeader)
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewNotifier("s3cret", nil)
	ev := NewGeneratedEvent(&models.Batch{ID: "batch-1", Total: 1, Generated: 1})
	if err := n.Deliver(context.Background(), srv.URL, ev); err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}

	if want := "sha256=" + Sign("s3cret", gotBody); gotSig != want {
		t.Errorf("signature = %q, want %q", gotSig, want)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(gotBody, &decoded); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if decoded["type"] != EventSchemasGenerated {
		t.Errorf("type = %v", decoded["type"])
	}
}

func TestDeliver_Unsigned(t *testing.T) {
	var hadSig atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hadSig.Store(r.Header.Get(SignatureHeader) != "")
	}))
	defer srv.Close()

	n := NewNotifier("", nil)
	if err := n.Deliver(context.Background(), srv.URL, &Event{Type: "x"}); err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}
	if hadSig.Load() {
		t.Error("unsigned delivery sent a signature header")
	}
}

func TestDeliver_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := NewNotifier("", nil)
	if err := n.Deliver(context.Background(), srv.URL, &Event{Type: "x"}); err == nil {
		t.Fatal("Deliver() expected error for 500")
	}
}

func TestDeliverAsync_Retries(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewNotifier("", []time.Duration{0, time.Millisecond, time.Millisecond, time.Millisecond})
	done := make(chan struct{})
	n.DeliverAsync(srv.URL, &Event{Type: "x"}, done)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("DeliverAsync did not finish")
	}
	if got := hits.Load(); got != 3 {
		t.Errorf("hits = %d, want 3", got)
	}
}

func TestDeliverAsync_GivesUp(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n := NewNotifier("", []time.Duration{0, time.Millisecond})
	done := make(chan struct{})
	n.DeliverAsync(srv.URL, &Event{Type: "x"}, done)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("DeliverAsync did not finish")
	}
	if got := hits.Load(); got != 2 {
		t.Errorf("hits = %d, want 2", got)
	}
}
