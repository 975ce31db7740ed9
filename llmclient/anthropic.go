package llmclient

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// AnthropicClient speaks the Anthropic Messages API.
type AnthropicClient struct {
	Conversation
	settings  Settings
	baseURL   string
	transport Transport
	resolver  FileResolver
}

// AnthropicOption configures an AnthropicClient.
type AnthropicOption func(*AnthropicClient)

// WithAnthropicBaseURL sets a custom base URL.
func WithAnthropicBaseURL(url string) AnthropicOption {
	return func(c *AnthropicClient) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// NewAnthropicClient creates a client for the Anthropic Messages API.
func NewAnthropicClient(settings Settings, opts ...AnthropicOption) *AnthropicClient {
	c := &AnthropicClient{
		settings:  settings,
		baseURL:   "https://api.anthropic.com",
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

// BuildPayload shapes the conversation into the Messages API body.
// System and user turns share the "user" wire role; contiguous
// same-role turns merge into one message with one text block per turn.
// Queued files are drained into the final message when it is a user
// message.
func (c *AnthropicClient) BuildPayload(ctx context.Context) map[string]interface{} {
	roles := map[Role]string{
		RoleSystem: "user",
		RoleUser:   "user",
		RoleModel:  "assistant",
	}

	messages := make([]interface{}, 0, len(c.turns))
	for _, turn := range c.turns {
		role := roles[turn.Role]
		block := map[string]interface{}{
			"type": "text",
			"text": strings.Join(turn.Text, "\n"),
		}
		if n := len(messages); n > 0 {
			last := messages[n-1].(map[string]interface{})
			if last["role"] == role {
				last["content"] = append(last["content"].([]interface{}), block)
				continue
			}
		}
		messages = append(messages, map[string]interface{}{
			"role":    role,
			"content": []interface{}{block},
		})
	}

	if n := len(messages); n > 0 && c.PendingFiles() > 0 {
		last := messages[n-1].(map[string]interface{})
		if last["role"] == "user" {
			content := last["content"].([]interface{})
			for {
				ref, ok := c.nextFile()
				if !ok {
					break
				}
				var block map[string]interface{}
				switch ref.Kind {
				case FilePDF:
					block = map[string]interface{}{
						"type": "document",
						"source": map[string]interface{}{
							"type": "url",
							"url":  ref.URL,
						},
					}
				case FileImage:
					block = map[string]interface{}{
						"type": "image",
						"source": map[string]interface{}{
							"type": "url",
							"url":  ref.URL,
						},
					}
				case FileText:
					resolved := c.resolver.Resolve(ctx, ref.URL)
					decoded, _ := base64.StdEncoding.DecodeString(string(resolved.Content))
					block = map[string]interface{}{
						"type": "document",
						"source": map[string]interface{}{
							"type":       "text",
							"media_type": "text/plain",
							"data":       string(decoded),
						},
					}
				}
				if block != nil {
					content = append(content, block)
				}
			}
			last["content"] = content
		}
	}

	payload := c.settings.ToRequestDict()
	payload["messages"] = messages
	return payload
}

// Request sends the conversation once and normalizes the reply.
func (c *AnthropicClient) Request(ctx context.Context) UnifiedResponse {
	data, err := json.Marshal(c.BuildPayload(ctx))
	if err != nil {
		return UnifiedResponse{Code: http.StatusBadRequest, Text: fmt.Sprintf("Request failed: %v", err)}
	}

	headers := map[string]string{
		"Content-Type":      "application/json",
		"anthropic-version": "2023-06-01",
		"x-api-key":         c.settings.APIKey,
	}
	resp, err := c.transport.Post(ctx, c.baseURL+"/v1/messages", headers, data)
	if err != nil {
		return failureResponse(err)
	}
	if resp.StatusCode != http.StatusOK {
		return UnifiedResponse{Code: resp.StatusCode, Text: string(resp.Body)}
	}
	return c.parseSuccess(resp.Body)
}

func (c *AnthropicClient) parseSuccess(body []byte) UnifiedResponse {
	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return UnifiedResponse{Code: http.StatusOK, Text: string(body)}
	}

	text := ""
	if content, ok := raw["content"].([]interface{}); ok && len(content) > 0 {
		if block, ok := content[0].(map[string]interface{}); ok {
			text, _ = block["text"].(string)
		}
	}

	tokens := Tokens{}
	if usage, ok := raw["usage"].(map[string]interface{}); ok {
		tokens.Prompt = intField(usage, "input_tokens")
		tokens.Generated = intField(usage, "output_tokens")
	}

	return UnifiedResponse{Code: http.StatusOK, Text: text, Tokens: tokens}
}
