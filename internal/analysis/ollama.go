package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultOllamaEndpoint = "http://localhost:11434"
	defaultOllamaModel    = "llama2"
)

// Ollama talks to a local Ollama server.
type Ollama struct {
	endpoint   string
	model      string
	httpClient *http.Client
}

// OllamaOption customizes the Ollama client.
type OllamaOption func(*Ollama)

// WithOllamaHTTPClient overrides the default HTTP client.
func WithOllamaHTTPClient(client *http.Client) OllamaOption {
	return func(c *Ollama) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithOllamaModel overrides the default model.
func WithOllamaModel(model string) OllamaOption {
	return func(c *Ollama) {
		model = strings.TrimSpace(model)
		if model != "" {
			c.model = model
		}
	}
}

// WithOllamaTimeout bounds each API request.
func WithOllamaTimeout(timeout time.Duration) OllamaOption {
	return func(c *Ollama) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// NewOllama constructs a client for a local Ollama endpoint.
func NewOllama(endpoint string, opts ...OllamaOption) *Ollama {
	client := &Ollama{
		endpoint:   strings.TrimRight(strings.TrimSpace(endpoint), "/"),
		model:      defaultOllamaModel,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	if client.endpoint == "" {
		client.endpoint = defaultOllamaEndpoint
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return client
}

func (c *Ollama) Name() string { return "ollama" }

// Analyze prompts the local model for structured document insights.
func (c *Ollama) Analyze(ctx context.Context, text string) (Result, error) {
	var empty Result
	text = strings.TrimSpace(text)
	if text == "" {
		return empty, errors.New("ollama analyze: text required")
	}

	reply, err := c.generate(ctx, documentAnalysisPrompt+"\n\n"+truncateForPrompt(text), true)
	if err != nil {
		return empty, err
	}

	var parsed Result
	if err := json.Unmarshal([]byte(reply), &parsed); err != nil {
		return empty, fmt.Errorf("ollama analyze: parse payload: %w", err)
	}
	return parsed, nil
}

// Chat sends a free-form message to the local model.
func (c *Ollama) Chat(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", errors.New("ollama chat: message required")
	}
	return c.generate(ctx, message, false)
}

// Models lists the models available on the local server.
func (c *Ollama) Models(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("ollama models: request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama models: request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama models: http %d", resp.StatusCode)
	}

	var payload struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("ollama models: decode response: %w", err)
	}
	names := make([]string, 0, len(payload.Models))
	for _, model := range payload.Models {
		names = append(names, model.Name)
	}
	return names, nil
}

func (c *Ollama) generate(ctx context.Context, prompt string, wantJSON bool) (string, error) {
	request := map[string]any{
		"model":  c.model,
		"prompt": prompt,
		"stream": false,
	}
	if wantJSON {
		request["format"] = "json"
	}
	encoded, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("ollama: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/api/generate", bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("ollama: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama: request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ollama: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("ollama: decode response: %w", err)
	}
	reply := strings.TrimSpace(payload.Response)
	if reply == "" {
		return "", errors.New("ollama: empty response")
	}
	return reply, nil
}
