// Package llm performs single-attempt calls to an OpenAI-compatible
// chat-completion endpoint.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cloo-solutions/relicguide/internal/telemetry"
	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/timeout"
	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultBaseURL points at SiliconFlow's OpenAI-compatible API.
	DefaultBaseURL     = "https://api.siliconflow.cn/v1"
	DefaultModel       = "Qwen/Qwen2.5-72B-Instruct"
	DefaultTemperature = float32(0.3)
	DefaultMaxTokens   = 200
	DefaultTimeout     = 10 * time.Second
)

var (
	// ErrUnavailable is returned for network failures, timeouts and unreadable responses.
	ErrUnavailable = errors.New("chat completion endpoint unavailable")
	// ErrEmptyCompletion is returned when the model produced no usable text.
	ErrEmptyCompletion = errors.New("chat completion returned no content")
)

// StatusError is returned when the endpoint answers with a non-success status.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("chat completion failed with status %d: %s", e.StatusCode, e.Message)
}

// ChatAPI is the subset of the go-openai client used here.
type ChatAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Temperature <= 0 {
		c.Temperature = DefaultTemperature
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// Client wraps a chat-completion API with a bounded wall-clock timeout.
type Client struct {
	api         ChatAPI
	model       string
	temperature float32
	maxTokens   int
	timeout     timeout.Timeout[openai.ChatCompletionResponse]
}

// NewClient creates a Client talking to cfg.BaseURL.
func NewClient(cfg Config) *Client {
	cfg = cfg.withDefaults()

	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return NewClientWithAPI(openai.NewClientWithConfig(oc), cfg)
}

// NewClientWithAPI creates a Client over an existing ChatAPI.
func NewClientWithAPI(api ChatAPI, cfg Config) *Client {
	cfg = cfg.withDefaults()
	return &Client{
		api:         api,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     timeout.New[openai.ChatCompletionResponse](cfg.Timeout),
	}
}

// Complete sends one system+user exchange and returns the cleaned answer.
// Failures are *StatusError, ErrUnavailable or ErrEmptyCompletion.
func (c *Client) Complete(ctx context.Context, systemPrompt, question string) (string, error) {
	ctx, span := telemetry.StartSpan(ctx, "llm.chat_completion", telemetry.SpanAttributes{Operation: c.model})
	defer span.End()

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: question},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		Stream:      false,
	}

	resp, err := failsafe.With[openai.ChatCompletionResponse](c.timeout).
		WithContext(ctx).
		GetWithExecution(func(exec failsafe.Execution[openai.ChatCompletionResponse]) (openai.ChatCompletionResponse, error) {
			return c.api.CreateChatCompletion(exec.Context(), req)
		})
	if err != nil {
		classified := classify(err)
		span.SetError(classified)
		return "", classified
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	answer := CleanAnswer(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", ErrEmptyCompletion
	}
	return answer, nil
}

// CleanAnswer strips leaked reasoning delimiters and surrounding whitespace.
func CleanAnswer(s string) string {
	s = strings.ReplaceAll(s, "<think>", "")
	s = strings.ReplaceAll(s, "</think>", "")
	return strings.TrimSpace(s)
}

func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return &StatusError{StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return &StatusError{StatusCode: reqErr.HTTPStatusCode, Message: reqErr.Error()}
	}

	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
