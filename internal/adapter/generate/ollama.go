package generate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"newsbrief/internal/port"
)

// OllamaClient sends prompts to a local Ollama-style generation server
// via /api/generate or /api/chat. The server may answer with a single
// JSON object, a stream of concatenated JSON objects, or raw text;
// Generate tolerates all three.
type OllamaClient struct {
	baseURL   string
	model     string
	maxTokens int
	useChat   bool
	client    *http.Client
}

type generateRequest struct {
	Model     string `json:"model"`
	Prompt    string `json:"prompt"`
	MaxTokens int    `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

// NewOllamaClient creates a generation client. timeout bounds the
// whole request; there is no retry and no cancellation beyond it.
func NewOllamaClient(baseURL, model string, maxTokens int, timeout time.Duration, useChat bool) *OllamaClient {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &OllamaClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		model:     model,
		maxTokens: maxTokens,
		useChat:   useChat,
		client:    &http.Client{Timeout: timeout},
	}
}

// Generate sends the prompt and returns the assembled text plus the
// raw response body. Transport and HTTP-status failures are hard
// errors; text extraction never fails, it degrades to the raw body.
func (c *OllamaClient) Generate(prompt string) (port.Generation, error) {
	var payload any
	var endpoint string
	if c.useChat {
		endpoint = c.baseURL + "/api/chat"
		payload = chatRequest{
			Model: c.model,
			Messages: []chatMessage{
				{Role: "system", Content: "You are a helpful assistant."},
				{Role: "user", Content: prompt},
			},
			MaxTokens: c.maxTokens,
		}
	} else {
		endpoint = c.baseURL + "/api/generate"
		payload = generateRequest{
			Model:     c.model,
			Prompt:    prompt,
			MaxTokens: c.maxTokens,
		}
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return port.Generation{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return port.Generation{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return port.Generation{}, fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return port.Generation{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return port.Generation{}, fmt.Errorf("generation API returned status %d: %s", resp.StatusCode, string(body))
	}

	raw := string(body)
	return port.Generation{Text: ExtractText(raw), Raw: raw}, nil
}

// ModelName returns the name of the generation model.
func (c *OllamaClient) ModelName() string {
	return c.model
}

// ExtractText assembles plain text from a generation response body.
// Shapes are tried in order: a single well-formed JSON object, a
// sequence of concatenated/newline-delimited JSON objects, and
// finally the raw body verbatim.
func ExtractText(raw string) string {
	if text, ok := parseSingleObject(raw); ok {
		return text
	}
	if text, ok := parseObjectStream(raw); ok {
		return text
	}
	return raw
}

// parseSingleObject handles a body that is exactly one JSON object.
func parseSingleObject(raw string) (string, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return "", false
	}
	if text, ok := textFragment(obj); ok {
		return strings.TrimSpace(text), true
	}
	// A well-formed object with no recognizable text field: hand back
	// its compact serialization rather than guessing.
	if data, err := json.Marshal(obj); err == nil {
		return string(data), true
	}
	return "", false
}

// parseObjectStream handles concatenated or newline-delimited JSON
// objects, as produced by streaming backends. For each opening brace
// from the current offset it decodes the longest valid JSON object
// starting there; on decode failure it advances one byte and retries,
// which tolerates stray characters between objects.
func parseObjectStream(raw string) (string, bool) {
	var b strings.Builder
	found := false

	pos := 0
	for pos < len(raw) {
		brace := strings.IndexByte(raw[pos:], '{')
		if brace < 0 {
			break
		}
		start := pos + brace

		dec := json.NewDecoder(strings.NewReader(raw[start:]))
		var obj map[string]any
		if err := dec.Decode(&obj); err != nil {
			pos = start + 1
			continue
		}
		if frag, ok := textFragment(obj); ok {
			b.WriteString(frag)
			found = true
		}
		pos = start + int(dec.InputOffset())
	}

	if !found {
		return "", false
	}
	return strings.TrimSpace(b.String()), true
}

// textFragment pulls the text content out of one decoded response
// object. Field precedence is text, response, output, message.
func textFragment(obj map[string]any) (string, bool) {
	if s, ok := obj["text"].(string); ok {
		return s, true
	}
	if s, ok := obj["response"].(string); ok {
		return s, true
	}
	switch out := obj["output"].(type) {
	case string:
		return out, true
	case []any:
		var parts []string
		for _, item := range out {
			switch v := item.(type) {
			case string:
				parts = append(parts, v)
			case map[string]any:
				if s, ok := v["response"].(string); ok {
					parts = append(parts, s)
				}
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, " "), true
		}
	}
	if msg, ok := obj["message"].(map[string]any); ok {
		if s, ok := msg["content"].(string); ok {
			return s, true
		}
		if s, ok := msg["text"].(string); ok {
			return s, true
		}
	}
	return "", false
}
