// Package stt implements the speech-to-text capability against an HTTP
// transcription service.
package stt

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jiaa-labs/alpine-core/internal/infrastructure/monitoring"
)

// Transcriber converts an utterance's audio bytes to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, formatHint string) (string, error)
}

// Config defines the transcription service configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client calls the transcription service over HTTP.
type Client struct {
	resty   *resty.Client
	metrics *monitoring.Metrics
}

type transcriptResponse struct {
	Text string `json:"text"`
}

// knownFormats the service accepts; anything else is sent as mp3.
var knownFormats = map[string]bool{"mp3": true, "mp4": true, "wav": true, "flac": true}

// NewClient creates a transcription client.
func NewClient(cfg Config, metrics *monitoring.Metrics) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetHeader("User-Agent", "alpine-core/1.0")

	return &Client{resty: client, metrics: metrics}
}

// Transcribe uploads the utterance and returns its transcript. An empty
// transcript is a valid result (silence); transport and non-2xx failures
// are errors the caller degrades on.
func (c *Client) Transcribe(ctx context.Context, audio []byte, formatHint string) (string, error) {
	timer := monitoring.NewTimer(c.metrics, "transcribe")

	format := strings.ToLower(strings.TrimPrefix(formatHint, "."))
	if !knownFormats[format] {
		format = "mp3"
	}

	var result transcriptResponse
	resp, err := c.resty.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/octet-stream").
		SetQueryParam("format", format).
		SetBody(audio).
		SetResult(&result).
		Post("/v1/transcriptions")

	if err != nil {
		timer.Stop(err)
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	if resp.IsError() {
		err = fmt.Errorf("transcription service returned %s", resp.Status())
		timer.Stop(err)
		return "", err
	}

	timer.Stop(nil)
	return result.Text, nil
}
