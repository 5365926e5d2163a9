package qa

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQAClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "test-key", 5*time.Second)
}

func TestAnswerReturnsModelSpan(t *testing.T) {
	client := newTestQAClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req inferenceRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "capital of France", req.Inputs.Question)
		assert.Equal(t, "Paris is the capital of France.", req.Inputs.Context)

		fmt.Fprint(w, `{"answer": "Paris", "score": 0.97}`)
	})

	answer, err := client.Answer(context.Background(), "capital of France", "Paris is the capital of France.")
	require.NoError(t, err)
	assert.Equal(t, "Paris", answer)
}

func TestAnswerUpstreamError(t *testing.T) {
	client := newTestQAClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.Answer(context.Background(), "q", "c")
	assert.Error(t, err)
}

func TestAnswerEmptySpanIsError(t *testing.T) {
	client := newTestQAClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"answer": "  ", "score": 0.1}`)
	})

	_, err := client.Answer(context.Background(), "q", "c")
	assert.Error(t, err)
}
