package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultDeepSeekBaseURL = "https://api.deepseek.com"
	defaultDeepSeekModel   = "deepseek-chat"
	jsonResponseType       = "json_object"
	defaultHTTPTimeout     = 15 * time.Second
)

// DeepSeek wraps the DeepSeek chat completion API.
type DeepSeek struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// DeepSeekOption customizes the DeepSeek client.
type DeepSeekOption func(*DeepSeek)

// WithDeepSeekHTTPClient overrides the default HTTP client.
func WithDeepSeekHTTPClient(client *http.Client) DeepSeekOption {
	return func(c *DeepSeek) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithDeepSeekBaseURL overrides the default API base (useful for tests/mocks).
func WithDeepSeekBaseURL(base string) DeepSeekOption {
	return func(c *DeepSeek) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithDeepSeekModel overrides the default chat model.
func WithDeepSeekModel(model string) DeepSeekOption {
	return func(c *DeepSeek) {
		model = strings.TrimSpace(model)
		if model != "" {
			c.model = model
		}
	}
}

// WithDeepSeekTimeout bounds each API request.
func WithDeepSeekTimeout(timeout time.Duration) DeepSeekOption {
	return func(c *DeepSeek) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// NewDeepSeek constructs a DeepSeek API client.
func NewDeepSeek(apiKey string, opts ...DeepSeekOption) *DeepSeek {
	client := &DeepSeek{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    defaultDeepSeekBaseURL,
		model:      defaultDeepSeekModel,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.baseURL == "" {
		client.baseURL = defaultDeepSeekBaseURL
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return client
}

func (c *DeepSeek) Name() string { return "deepseek" }

// Analyze asks DeepSeek to extract structured insights from document text.
func (c *DeepSeek) Analyze(ctx context.Context, text string) (Result, error) {
	var empty Result
	text = strings.TrimSpace(text)
	if text == "" {
		return empty, errors.New("deepseek analyze: text required")
	}

	content, err := c.complete(ctx, documentAnalysisPrompt, truncateForPrompt(text), true)
	if err != nil {
		return empty, err
	}

	var parsed Result
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return empty, fmt.Errorf("deepseek analyze: parse payload: %w", err)
	}
	return parsed, nil
}

// Chat sends a free-form message and returns the model's reply.
func (c *DeepSeek) Chat(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", errors.New("deepseek chat: message required")
	}
	return c.complete(ctx, "You are a helpful study assistant.", message, false)
}

func (c *DeepSeek) complete(ctx context.Context, system, user string, wantJSON bool) (string, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return "", errors.New("deepseek: api key required")
	}

	request := chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0,
	}
	if wantJSON {
		request.ResponseFormat = map[string]string{"type": jsonResponseType}
	}

	endpoint, err := url.JoinPath(c.baseURL, "/chat/completions")
	if err != nil {
		return "", fmt.Errorf("deepseek: build url: %w", err)
	}
	encoded, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("deepseek: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("deepseek: request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("deepseek: request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("deepseek: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("deepseek: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("deepseek: decode response: %w", err)
	}
	if completion.Error != nil {
		return "", fmt.Errorf("deepseek: api error: %s", strings.TrimSpace(completion.Error.Message))
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("deepseek: empty choices")
	}
	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("deepseek: empty content")
	}
	return content, nil
}

type chatCompletionRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}
