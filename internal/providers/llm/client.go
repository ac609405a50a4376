package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/jiaa-labs/alpine-core/internal/infrastructure/monitoring"
	"github.com/jiaa-labs/alpine-core/internal/infrastructure/resilience"
)

// Config defines the Gemini client configuration.
type Config struct {
	APIKey      string
	Model       string
	Timeout     time.Duration
	Temperature float32
}

// Client is a Gemini-backed text generator.
type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	temp    float32
	breaker *resilience.Breaker
	metrics *monitoring.Metrics
}

// NewClient creates a Gemini client.
func NewClient(ctx context.Context, cfg Config, metrics *monitoring.Metrics) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("AI API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	breaker := resilience.New("llm", resilience.Settings{
		MaxRequests: 2,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		temp:    cfg.Temperature,
		breaker: breaker,
		metrics: metrics,
	}, nil
}

// Generate issues one completion call and returns the raw model text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	timer := monitoring.NewTimer(c.metrics, "generate")

	var text string
	err := c.breaker.Do(func() error {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		temp := c.temp
		result, err := c.client.Models.GenerateContent(callCtx, c.model,
			genai.Text(prompt),
			&genai.GenerateContentConfig{Temperature: &temp},
		)
		if err != nil {
			return fmt.Errorf("generation failed: %w", err)
		}

		text = result.Text()
		if text == "" {
			return errors.New("empty generation response")
		}
		return nil
	})

	timer.Stop(err)
	if err != nil {
		return "", err
	}
	return text, nil
}
