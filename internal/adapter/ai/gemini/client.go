package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/seu-repo/tradeinsight/internal/ports"
)

const DefaultModel = "gemini-2.0-flash"

var ErrEmptyResponse = errors.New("gemini returned an empty response")

// Client implements ports.TextGenerator on top of the Gemini API. Calls go
// through a circuit breaker so a failing upstream is not hammered.
type Client struct {
	client  *genai.Client
	model   string
	breaker *gobreaker.CircuitBreaker
	log     *zap.Logger
}

func NewClient(ctx context.Context, apiKey, model string, log *zap.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "gemini",
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	log.Info("Gemini client initialized", zap.String("model", model))

	return &Client{
		client:  client,
		model:   model,
		breaker: breaker,
		log:     log,
	}, nil
}

var _ ports.TextGenerator = (*Client)(nil)

func (c *Client) Generate(ctx context.Context, prompt string, opts ports.GenerateOptions) (string, error) {
	config := &genai.GenerateContentConfig{}
	if opts.Temperature > 0 {
		config.Temperature = genai.Ptr(opts.Temperature)
	}
	if opts.JSON {
		config.ResponseMIMEType = "application/json"
	}
	if opts.SystemInstruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{
				{Text: opts.SystemInstruction},
			},
		}
	}

	out, err := c.breaker.Execute(func() (interface{}, error) {
		result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
		if err != nil {
			return "", err
		}
		return result.Text(), nil
	})
	if err != nil {
		c.log.Error("gemini generation failed", zap.String("model", c.model), zap.Error(err))
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	text := strings.TrimSpace(out.(string))
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
