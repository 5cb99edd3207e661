package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func callTool(t *testing.T, h func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]interface{}) (string, bool) {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content type = %T, want TextContent", res.Content[0])
	}
	return text.Text, res.IsError
}

func TestGenerateSchemas(t *testing.T) {
	var got map[string]interface{}
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/schemas" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"id":"batch-1","total":2,"generated":1,"outcomes":[
			{"status":"success","input":"https://a.example","title":"A","number":1,"snippet":"<script>a</script>"},
			{"status":"failure","input":"nope","error":{"code":"INVALID_URL","message":"invalid URL"}}]}`))
	}))
	defer api.Close()

	text, isErr := callTool(t, handleGenerateSchemas(api.URL), map[string]interface{}{
		"urls":        []interface{}{"https://a.example", "nope"},
		"concurrency": 2,
	})
	if isErr {
		t.Fatalf("unexpected tool error: %s", text)
	}
	for _, want := range []string{"1 of 2 schemas generated", "Schema #1: A", "<script>a</script>", "nope: invalid URL"} {
		if !strings.Contains(text, want) {
			t.Errorf("result missing %q:\n%s", want, text)
		}
	}
	if got["concurrency"] == nil {
		t.Error("concurrency was not forwarded")
	}
}

func TestGenerateSchemas_APIError(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"BATCH_TOO_LARGE","message":"enter at most 100 URLs"}}`))
	}))
	defer api.Close()

	text, isErr := callTool(t, handleGenerateSchemas(api.URL), map[string]interface{}{
		"urls": []interface{}{"https://a.example"},
	})
	if !isErr || !strings.Contains(text, "BATCH_TOO_LARGE") {
		t.Errorf("result = %q (error=%v), want BATCH_TOO_LARGE error", text, isErr)
	}

	text, isErr = callTool(t, handleGenerateSchemas(api.URL), map[string]interface{}{})
	if !isErr {
		t.Errorf("missing urls should fail, got %q", text)
	}
}

func TestRenderSchema(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["url"] == "nope" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":"INVALID_URL","message":"invalid URL"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"snippet":"S:` + req["title"] + `"}`))
	}))
	defer api.Close()

	h := handleRenderSchema(api.URL)
	text, isErr := callTool(t, h, map[string]interface{}{"url": "https://a.example", "title": "T"})
	if isErr || text != "S:T" {
		t.Errorf("result = %q (error=%v), want S:T", text, isErr)
	}

	text, isErr = callTool(t, h, map[string]interface{}{"url": "nope", "title": "T"})
	if !isErr || !strings.Contains(text, "INVALID_URL") {
		t.Errorf("result = %q (error=%v), want INVALID_URL error", text, isErr)
	}
}

func TestNewServer(t *testing.T) {
	if newServer("http://127.0.0.1:1") == nil {
		t.Fatal("newServer returned nil")
	}
}
