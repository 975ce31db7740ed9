package llmclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Client is the per-vendor contract: shape the conversation into a
// request body and send it once. Request never returns an error; every
// failure path is folded into the UnifiedResponse.
type Client interface {
	BuildPayload(ctx context.Context) map[string]interface{}
	Request(ctx context.Context) UnifiedResponse
}

// failureResponse converts a transport failure into a unified result.
// An embedded HTTP reply wins; otherwise the status is fixed at 400
// with a synthesized message.
func failureResponse(err error) UnifiedResponse {
	var terr *TransportError
	if errors.As(err, &terr) && terr.Response != nil {
		return UnifiedResponse{
			Code: terr.Response.StatusCode,
			Text: string(terr.Response.Body),
		}
	}
	return UnifiedResponse{
		Code: http.StatusBadRequest,
		Text: fmt.Sprintf("Request failed: %v", err),
	}
}

// intField reads a numeric field from decoded JSON, defaulting to 0.
func intField(m map[string]interface{}, key string) int {
	if v, ok := m[key].(float64); ok {
		return int(v)
	}
	return 0
}
