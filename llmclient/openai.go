package llmclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// OpenAIClient speaks the OpenAI Responses API.
type OpenAIClient struct {
	Conversation
	settings  Settings
	baseURL   string
	transport Transport
	resolver  FileResolver
}

// OpenAIOption configures an OpenAIClient.
type OpenAIOption func(*OpenAIClient)

// WithOpenAIBaseURL sets a custom base URL.
func WithOpenAIBaseURL(url string) OpenAIOption {
	return func(c *OpenAIClient) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// NewOpenAIClient creates a client for the OpenAI Responses API.
func NewOpenAIClient(settings Settings, opts ...OpenAIOption) *OpenAIClient {
	c := &OpenAIClient{
		settings:  settings,
		baseURL:   "https://us.api.openai.com",
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

// BuildPayload shapes the conversation into the Responses API body.
// The system turn is lifted out of the turn list into the top-level
// instructions field; user and model turns become input entries with
// input_text and output_text blocks. PDF and image attachments embed
// as typed URL blocks, anything else is dropped without a fetch.
func (c *OpenAIClient) BuildPayload(ctx context.Context) map[string]interface{} {
	roles := map[Role]string{
		RoleUser:  "user",
		RoleModel: "assistant",
	}
	blockTypes := map[Role]string{
		RoleUser:  "input_text",
		RoleModel: "output_text",
	}

	instructions := ""
	input := make([]interface{}, 0, len(c.turns))
	for _, turn := range c.turns {
		if turn.Role == RoleSystem {
			instructions = strings.Join(turn.Text, "\n")
			continue
		}
		role := roles[turn.Role]
		block := map[string]interface{}{
			"type": blockTypes[turn.Role],
			"text": strings.Join(turn.Text, "\n"),
		}
		if n := len(input); n > 0 {
			last := input[n-1].(map[string]interface{})
			if last["role"] == role {
				last["content"] = append(last["content"].([]interface{}), block)
				continue
			}
		}
		input = append(input, map[string]interface{}{
			"role":    role,
			"content": []interface{}{block},
		})
	}

	if n := len(input); n > 0 && c.PendingFiles() > 0 {
		last := input[n-1].(map[string]interface{})
		if last["role"] == "user" {
			content := last["content"].([]interface{})
			for {
				ref, ok := c.nextFile()
				if !ok {
					break
				}
				switch ref.Kind {
				case FilePDF:
					content = append(content, map[string]interface{}{
						"type":     "input_file",
						"file_url": ref.URL,
					})
				case FileImage:
					content = append(content, map[string]interface{}{
						"type":      "input_image",
						"image_url": ref.URL,
					})
				}
			}
			last["content"] = content
		}
	}

	payload := c.settings.ToRequestDict()
	payload["instructions"] = instructions
	payload["input"] = input
	return payload
}

// Request sends the conversation once and normalizes the reply.
func (c *OpenAIClient) Request(ctx context.Context) UnifiedResponse {
	data, err := json.Marshal(c.BuildPayload(ctx))
	if err != nil {
		return UnifiedResponse{Code: http.StatusBadRequest, Text: fmt.Sprintf("Request failed: %v", err)}
	}

	headers := map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer " + c.settings.APIKey,
	}
	resp, err := c.transport.Post(ctx, c.baseURL+"/v1/responses", headers, data)
	if err != nil {
		return failureResponse(err)
	}
	if resp.StatusCode != http.StatusOK {
		return UnifiedResponse{Code: resp.StatusCode, Text: string(resp.Body)}
	}
	return c.parseSuccess(resp.Body)
}

// parseSuccess concatenates the text fragments of every output entry
// tagged as a message, in list order; other entry kinds (reasoning,
// tool traffic) contribute nothing.
func (c *OpenAIClient) parseSuccess(body []byte) UnifiedResponse {
	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return UnifiedResponse{Code: http.StatusOK, Text: string(body)}
	}

	var text strings.Builder
	if output, ok := raw["output"].([]interface{}); ok {
		for _, item := range output {
			entry, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			if kind, _ := entry["type"].(string); kind != "message" {
				continue
			}
			content, _ := entry["content"].([]interface{})
			for _, fragment := range content {
				if block, ok := fragment.(map[string]interface{}); ok {
					if t, ok := block["text"].(string); ok {
						text.WriteString(t)
					}
				}
			}
		}
	}

	tokens := Tokens{}
	if usage, ok := raw["usage"].(map[string]interface{}); ok {
		tokens.Prompt = intField(usage, "input_tokens")
		tokens.Generated = intField(usage, "output_tokens")
	}

	return UnifiedResponse{Code: http.StatusOK, Text: text.String(), Tokens: tokens}
}
