package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrUnavailable is returned when no API key is configured. Callers treat it
// as a degraded result, never as a startup failure.
var ErrUnavailable = errors.New("web search unavailable: no API key configured")

const defaultEndpoint = "https://api.tavily.com/search"

// TavilyClient calls the Tavily search API.
type TavilyClient struct {
	ApiKey   string
	Endpoint string
	Client   *http.Client
}

// NewTavilyClient builds a client. An empty apiKey is allowed; Search then
// reports ErrUnavailable instead of the constructor failing.
func NewTavilyClient(apiKey string) *TavilyClient {
	return &TavilyClient{
		ApiKey:   apiKey,
		Endpoint: defaultEndpoint,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type tavilySearchRequest struct {
	ApiKey        string `json:"api_key"`
	Query         string `json:"query"`
	MaxResults    int    `json:"max_results"`
	IncludeAnswer bool   `json:"include_answer"`
}

type tavilySearchResult struct {
	Title   string `json:"title"`
	Url     string `json:"url"`
	Content string `json:"content"`
}

type tavilySearchResponse struct {
	Answer  string               `json:"answer"`
	Results []tavilySearchResult `json:"results"`
}

// Search runs one query and normalizes the tool result into plain text.
func (c *TavilyClient) Search(ctx context.Context, query string) (string, error) {
	if c.ApiKey == "" {
		return "", ErrUnavailable
	}

	reqPayload := tavilySearchRequest{
		ApiKey:        c.ApiKey,
		Query:         query,
		MaxResults:    5,
		IncludeAnswer: true,
	}
	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.Endpoint, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("tavily request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tavily error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var searchResp tavilySearchResponse
	if err := json.Unmarshal(bodyBytes, &searchResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	var out strings.Builder
	if searchResp.Answer != "" {
		out.WriteString(searchResp.Answer)
	}
	for _, r := range searchResp.Results {
		if out.Len() > 0 {
			out.WriteString("\n\n")
		}
		out.WriteString(r.Title)
		out.WriteString("\n")
		out.WriteString(r.Content)
	}

	return out.String(), nil
}
