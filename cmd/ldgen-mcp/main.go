// Command ldgen-mcp exposes the ldgen API to MCP clients over stdio.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// apiError mirrors the ldgen API error payload.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// batchResponse mirrors the ldgen POST /schemas response.
type batchResponse struct {
	ID        string `json:"id"`
	Total     int    `json:"total"`
	Generated int    `json:"generated"`
	Outcomes  []struct {
		Status  string    `json:"status"`
		Input   string    `json:"input"`
		Title   string    `json:"title"`
		Number  int       `json:"number"`
		Snippet string    `json:"snippet"`
		Error   *apiError `json:"error"`
	} `json:"outcomes"`
	Error *apiError `json:"error"`
}

// renderResponse mirrors the ldgen POST /schemas/render response.
type renderResponse struct {
	Snippet string    `json:"snippet"`
	Error   *apiError `json:"error"`
}

func main() {
	apiURL := os.Getenv("LDGEN_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}

	if err := server.ServeStdio(newServer(apiURL)); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func newServer(apiURL string) *server.MCPServer {
	s := server.NewMCPServer(
		"ldgen",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	generateTool := mcp.NewTool("generate_schemas",
		mcp.WithDescription("Generate EducationalOrganization JSON-LD snippets for up to 100 page URLs. Titles are read from each page, or derived from the URL path when the page cannot be fetched."),
		mcp.WithArray("urls",
			mcp.Required(),
			mcp.Description("Page URLs, in the order the snippets should be numbered"),
		),
		mcp.WithNumber("concurrency",
			mcp.Description("Titles fetched in parallel (default: 1, max: 10)"),
		),
	)
	s.AddTool(generateTool, handleGenerateSchemas(apiURL))

	renderTool := mcp.NewTool("render_schema",
		mcp.WithDescription("Render the JSON-LD snippet for one URL with a given title, for example after editing a generated title."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The page URL"),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("The title to use as alternateName"),
		),
	)
	s.AddTool(renderTool, handleRenderSchema(apiURL))

	return s
}

// apiPost sends a POST request to the ldgen API and returns the response body.
func apiPost(ctx context.Context, client *http.Client, apiURL, path string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

func handleGenerateSchemas(apiURL string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 600 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		urls, err := request.RequireStringSlice("urls")
		if err != nil {
			return mcp.NewToolResultError("urls is required and must be an array of strings"), nil
		}

		payload := map[string]interface{}{"urls": urls}
		if c, ok := request.GetArguments()["concurrency"]; ok {
			payload["concurrency"] = c
		}

		respBody, err := apiPost(ctx, client, apiURL, "/api/v1/schemas", payload)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("generate request failed: %v", err)), nil
		}

		var br batchResponse
		if err := json.Unmarshal(respBody, &br); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}
		if br.Error != nil {
			return mcp.NewToolResultError(fmt.Sprintf("[%s] %s", br.Error.Code, br.Error.Message)), nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "Batch %s: %d of %d schemas generated\n\n", br.ID, br.Generated, br.Total)
		for _, o := range br.Outcomes {
			if o.Status != "success" {
				msg := "failed"
				if o.Error != nil {
					msg = o.Error.Message
				}
				fmt.Fprintf(&sb, "--- %s: %s ---\n\n", o.Input, msg)
				continue
			}
			fmt.Fprintf(&sb, "--- Schema #%d: %s ---\n%s\n\n", o.Number, o.Title, o.Snippet)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func handleRenderSchema(apiURL string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 30 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}
		title, err := request.RequireString("title")
		if err != nil {
			return mcp.NewToolResultError("title is required"), nil
		}

		respBody, err := apiPost(ctx, client, apiURL, "/api/v1/schemas/render", map[string]string{
			"url":   url,
			"title": title,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("render request failed: %v", err)), nil
		}

		var rr renderResponse
		if err := json.Unmarshal(respBody, &rr); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}
		if rr.Error != nil {
			return mcp.NewToolResultError(fmt.Sprintf("[%s] %s", rr.Error.Code, rr.Error.Message)), nil
		}
		return mcp.NewToolResultText(rr.Snippet), nil
	}
}
