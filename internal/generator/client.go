package generator

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

	"go.uber.org/zap"
)

// ErrProvider is returned when the completion endpoint fails or replies with nothing
// usable. Provider response bodies are logged, never returned.
var ErrProvider = errors.New("text generation provider failed")

const systemPrompt = "You write short, original compliments for someone's partner. " +
	"Reply with the compliment only, in at most three sentences, without quotes or preamble. " +
	"Never be crude or offensive."

// maxErrorBody caps how much of an error response is read for logging.
const maxErrorBody = 4 << 10

// Config configures the chat-completions client.
type Config struct {
	APIURL    string
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Client calls an OpenAI-compatible chat-completions endpoint with a server-side key.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger
}

// NewClient validates cfg and returns a Client.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.APIURL == "" {
		return nil, errors.New("text generation API URL is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("text generation API key is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("text generation model is required")
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 150
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}, nil
}

// Complete sends one prompt and returns the trimmed first choice.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens: c.cfg.MaxTokens,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("Text generation request failed", zap.Error(err))
		return "", fmt.Errorf("%w: request failed", ErrProvider)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Error("Text generation provider returned an error",
			zap.Int("status_code", resp.StatusCode),
			zap.ByteString("body", raw))
		return "", fmt.Errorf("%w: status %d", ErrProvider, resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.logger.Error("Failed to decode text generation response", zap.Error(err))
		return "", fmt.Errorf("%w: malformed response", ErrProvider)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ErrProvider)
	}
	content := strings.TrimSpace(out.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("%w: empty completion", ErrProvider)
	}
	return content, nil
}
