package llmclient

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedClient replays a fixed sequence of results.
type scriptedClient struct {
	responses []UnifiedResponse
	calls     int
}

func (s *scriptedClient) BuildPayload(context.Context) map[string]interface{} {
	return map[string]interface{}{}
}

func (s *scriptedClient) Request(context.Context) UnifiedResponse {
	result := s.responses[s.calls]
	s.calls++
	return result
}

func TestAttemptRequestsFirstTrySuccess(t *testing.T) {
	client := &scriptedClient{responses: []UnifiedResponse{
		{Code: http.StatusOK, Text: "success", Tokens: Tokens{Prompt: 10, Generated: 20}},
	}}

	results := AttemptRequests(context.Background(), client, 3)

	require.Len(t, results, 1)
	assert.Equal(t, client.responses[0], results[0])
	assert.Equal(t, 1, client.calls)
}

func TestAttemptRequestsRetriesUntilSuccess(t *testing.T) {
	client := &scriptedClient{responses: []UnifiedResponse{
		{Code: http.StatusTooManyRequests, Text: "rate limit"},
		{Code: http.StatusOK, Text: "success", Tokens: Tokens{Prompt: 10, Generated: 20}},
	}}

	results := AttemptRequests(context.Background(), client, 3)

	require.Len(t, results, 2)
	assert.Equal(t, http.StatusTooManyRequests, results[0].Code)
	assert.Equal(t, http.StatusOK, results[1].Code)
	assert.Equal(t, 2, client.calls)
}

func TestAttemptRequestsExhaustion(t *testing.T) {
	client := &scriptedClient{responses: []UnifiedResponse{
		{Code: http.StatusTooEarly, Text: "error1"},
		{Code: http.StatusBadGateway, Text: "error2"},
	}}

	results := AttemptRequests(context.Background(), client, 2)

	require.Len(t, results, 3)
	assert.Equal(t, "error1", results[0].Text)
	assert.Equal(t, "error2", results[1].Text)
	assert.Equal(t, UnifiedResponse{
		Code: http.StatusTooManyRequests,
		Text: "Http error: max attempts (2) exceeded.",
	}, results[2])
	assert.Equal(t, 2, client.calls)
}

func TestAttemptRequestsOnlyExactOKStops(t *testing.T) {
	// 204 is a success in HTTP terms but does not stop the loop.
	client := &scriptedClient{responses: []UnifiedResponse{
		{Code: http.StatusNoContent},
		{Code: http.StatusOK, Text: "success"},
	}}

	results := AttemptRequests(context.Background(), client, 3)

	require.Len(t, results, 2)
	assert.Equal(t, http.StatusOK, results[1].Code)
}
