// Package qa delegates question answering to a hosted extractive QA
// model.
package qa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client calls an extractive question-answering inference endpoint that
// takes a (question, context) pair and returns a text-span answer.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type inferenceRequest struct {
	Inputs inferenceInputs `json:"inputs"`
}

type inferenceInputs struct {
	Question string `json:"question"`
	Context  string `json:"context"`
}

type inferenceResponse struct {
	Answer string  `json:"answer"`
	Score  float64 `json:"score"`
}

// Answer returns the model's best text span for the question within the
// context passage. Callers treat an error as "skip this question".
func (c *Client) Answer(ctx context.Context, question, contextText string) (string, error) {
	body, err := json.Marshal(inferenceRequest{
		Inputs: inferenceInputs{Question: question, Context: contextText},
	})
	if err != nil {
		return "", fmt.Errorf("marshal qa request failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build qa request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("qa request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read qa response failed: %w", err)
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("qa endpoint status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed inferenceResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("parse qa response failed: %w", err)
	}
	answer := strings.TrimSpace(parsed.Answer)
	if answer == "" {
		return "", fmt.Errorf("qa model returned no answer")
	}
	return answer, nil
}
