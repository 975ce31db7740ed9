package llmclient

import (
	"context"
	"fmt"
	"net/http"
)

// AttemptRequests calls the client's Request up to maxAttempts times,
// collecting every attempt's result in order, and stops as soon as an
// attempt returns 200 OK. Any other status, transient or not, counts
// as a failed attempt. When the budget runs out a final synthetic 429
// result is appended, so the slice has maxAttempts+1 entries on
// exhaustion. There is no delay between attempts.
func AttemptRequests(ctx context.Context, client Client, maxAttempts int) []UnifiedResponse {
	results := make([]UnifiedResponse, 0, maxAttempts)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		result := client.Request(ctx)
		results = append(results, result)
		if result.Code == http.StatusOK {
			return results
		}
	}
	return append(results, UnifiedResponse{
		Code: http.StatusTooManyRequests,
		Text: fmt.Sprintf("Http error: max attempts (%d) exceeded.", maxAttempts),
	})
}
