// Package search scrapes a general web search engine's results page.
package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"askpilot/internal/model"
	"askpilot/pkg/log"
)

// NoResultsMessage is returned by Summarize when the engine gave
// nothing back.
const NoResultsMessage = "Sorry, I couldn't find any relevant information."

// Client fetches one results page per query and parses its result
// blocks. Every transport or parse failure degrades to an empty result
// list; Search never returns an error to its caller.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Search returns the ordered result blocks of one results page, bounded
// by whatever the engine returns. Failures are logged and yield an
// empty slice.
func (c *Client) Search(ctx context.Context, query string) []model.SearchResult {
	results, err := c.search(ctx, query)
	if err != nil {
		log.Warnf("web search for %q failed: %v", query, err)
		return nil
	}
	return results
}

func (c *Client) search(ctx context.Context, query string) ([]model.SearchResult, error) {
	fullURL := fmt.Sprintf("%s?q=%s", c.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build search request failed: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search engine returned status %d", resp.StatusCode)
	}

	results, err := ParseResults(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse results page failed: %w", err)
	}
	return results, nil
}

// Summarize answers a general query from the engine's snippets: the
// first maxResults descriptions joined by line breaks, with the first
// result's URL appended as attribution. With zero results it returns
// NoResultsMessage and no attribution link.
func (c *Client) Summarize(ctx context.Context, query string, maxResults int) string {
	if maxResults <= 0 {
		maxResults = 5
	}
	results := c.Search(ctx, query)
	if len(results) == 0 {
		return NoResultsMessage
	}
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	lines := make([]string, 0, len(results))
	for _, r := range results {
		lines = append(lines, r.Description)
	}
	return strings.Join(lines, "\n") + "\nSource: " + results[0].Link
}
