package llmclient

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// asJSON round-trips a payload through encoding/json so tests compare
// the wire shape rather than in-memory types.
func asJSON(t *testing.T, payload map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

// stubTransport returns a scripted wire response or error for Post and
// records nothing; Get is served from a URL map.
type stubTransport struct {
	postResp *WireResponse
	postErr  error
	getResp  map[string]*WireResponse
}

func (s *stubTransport) Post(_ context.Context, _ string, _ map[string]string, _ []byte) (*WireResponse, error) {
	return s.postResp, s.postErr
}

func (s *stubTransport) Get(_ context.Context, url string) (*WireResponse, error) {
	if resp, ok := s.getResp[url]; ok {
		return resp, nil
	}
	return nil, &TransportError{Message: "request failed"}
}

// stubResolver serves canned resolutions in queue order and records
// the URLs it was asked for.
type stubResolver struct {
	queue []ResolvedFile
	calls []string
}

func (s *stubResolver) Resolve(_ context.Context, url string) ResolvedFile {
	s.calls = append(s.calls, url)
	if len(s.queue) == 0 {
		return ResolvedFile{}
	}
	resolved := s.queue[0]
	s.queue = s.queue[1:]
	return resolved
}
