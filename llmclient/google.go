package llmclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// maxAttachmentBytes caps the cumulative raw size of attachments
// embedded in one Google request.
const maxAttachmentBytes = 10 * 1024 * 1024

// GoogleClient speaks the Gemini generateContent API.
type GoogleClient struct {
	Conversation
	settings  Settings
	baseURL   string
	transport Transport
	resolver  FileResolver
}

// GoogleOption configures a GoogleClient.
type GoogleOption func(*GoogleClient)

// WithGoogleBaseURL sets a custom base URL.
func WithGoogleBaseURL(url string) GoogleOption {
	return func(c *GoogleClient) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// NewGoogleClient creates a client for the Gemini API.
func NewGoogleClient(settings Settings, opts ...GoogleOption) *GoogleClient {
	c := &GoogleClient{
		settings:  settings,
		baseURL:   "https://generativelanguage.googleapis.com",
		transport: NewHTTPTransport(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.resolver == nil {
		c.resolver = NewHTTPResolver(c.transport)
	}
	return c
}

// BuildPayload shapes the conversation into the generateContent body.
// Every queued file is fetched while draining; a file is embedded only
// if it resolved to a non-zero size and the running total stays
// strictly under the attachment budget.
func (c *GoogleClient) BuildPayload(ctx context.Context) map[string]interface{} {
	roles := map[Role]string{
		RoleSystem: "user",
		RoleUser:   "user",
		RoleModel:  "model",
	}

	contents := make([]interface{}, 0, len(c.turns))
	for _, turn := range c.turns {
		role := roles[turn.Role]
		part := map[string]interface{}{
			"text": strings.Join(turn.Text, "\n"),
		}
		if n := len(contents); n > 0 {
			last := contents[n-1].(map[string]interface{})
			if last["role"] == role {
				last["parts"] = append(last["parts"].([]interface{}), part)
				continue
			}
		}
		contents = append(contents, map[string]interface{}{
			"role":  role,
			"parts": []interface{}{part},
		})
	}

	if n := len(contents); n > 0 && c.PendingFiles() > 0 {
		last := contents[n-1].(map[string]interface{})
		if last["role"] == "user" {
			parts := last["parts"].([]interface{})
			sizeSum := 0
			for {
				ref, ok := c.nextFile()
				if !ok {
					break
				}
				resolved := c.resolver.Resolve(ctx, ref.URL)
				if resolved.Size > 0 && sizeSum+resolved.Size < maxAttachmentBytes {
					sizeSum += resolved.Size
					parts = append(parts, map[string]interface{}{
						"inline_data": map[string]interface{}{
							"mime_type": resolved.MimeType,
							"data":      string(resolved.Content),
						},
					})
				}
			}
			last["parts"] = parts
		}
	}

	payload := c.settings.ToRequestDict()
	payload["contents"] = contents
	return payload
}

// Request sends the conversation once and normalizes the reply. The
// API key travels in the URL query string, not a header.
func (c *GoogleClient) Request(ctx context.Context) UnifiedResponse {
	data, err := json.Marshal(c.BuildPayload(ctx))
	if err != nil {
		return UnifiedResponse{Code: http.StatusBadRequest, Text: fmt.Sprintf("Request failed: %v", err)}
	}

	url := fmt.Sprintf("%s/v1beta/%s:generateContent?key=%s", c.baseURL, c.settings.Model, c.settings.APIKey)
	headers := map[string]string{
		"Content-Type": "application/json",
	}
	resp, err := c.transport.Post(ctx, url, headers, data)
	if err != nil {
		return failureResponse(err)
	}
	if resp.StatusCode != http.StatusOK {
		return UnifiedResponse{Code: resp.StatusCode, Text: string(resp.Body)}
	}
	return c.parseSuccess(resp.Body)
}

func (c *GoogleClient) parseSuccess(body []byte) UnifiedResponse {
	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return UnifiedResponse{Code: http.StatusOK, Text: string(body)}
	}

	text := ""
	if candidates, ok := raw["candidates"].([]interface{}); ok && len(candidates) > 0 {
		if candidate, ok := candidates[0].(map[string]interface{}); ok {
			if content, ok := candidate["content"].(map[string]interface{}); ok {
				if parts, ok := content["parts"].([]interface{}); ok && len(parts) > 0 {
					if part, ok := parts[0].(map[string]interface{}); ok {
						text, _ = part["text"].(string)
					}
				}
			}
		}
	}

	tokens := Tokens{}
	if usage, ok := raw["usageMetadata"].(map[string]interface{}); ok {
		tokens.Prompt = intField(usage, "promptTokenCount")
		// Thinking tokens count toward the generated total.
		tokens.Generated = intField(usage, "candidatesTokenCount") + intField(usage, "thoughtsTokenCount")
	}

	return UnifiedResponse{Code: http.StatusOK, Text: text, Tokens: tokens}
}
