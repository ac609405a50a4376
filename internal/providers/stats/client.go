// Package stats reads behavioral statistics from the external statistics
// service: the rolling play ratio feeding the trust score and the recent
// violation list feeding the persona context. Failures degrade to a
// neutral context; they never block a turn.
package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/jiaa-labs/alpine-core/internal/infrastructure/monitoring"
)

// Source supplies the behavioral inputs for a user.
type Source interface {
	PlayRatio(ctx context.Context, userID string, window time.Duration) (float64, error)
	RecentViolations(ctx context.Context, userID string, window time.Duration) ([]string, error)
}

// Config defines the statistics service configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client calls the statistics service over HTTP with retries.
type Client struct {
	http    *retryablehttp.Client
	baseURL string
	metrics *monitoring.Metrics
}

type summaryResponse struct {
	Ratio      float64  `json:"ratio"`
	StudyCount int      `json:"study_count"`
	PlayCount  int      `json:"play_count"`
	Violations []string `json:"violations"`
}

// NewClient creates a statistics client.
func NewClient(cfg Config, metrics *monitoring.Metrics) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.Logger = nil
	if cfg.Timeout != 0 {
		rc.HTTPClient.Timeout = cfg.Timeout
	}

	return &Client{http: rc, baseURL: cfg.BaseURL, metrics: metrics}
}

// PlayRatio returns the play/study ratio percentage for the window.
func (c *Client) PlayRatio(ctx context.Context, userID string, window time.Duration) (float64, error) {
	summary, err := c.summary(ctx, userID, window)
	if err != nil {
		return 0, err
	}
	return summary.Ratio, nil
}

// RecentViolations returns the user's violation history for the window.
func (c *Client) RecentViolations(ctx context.Context, userID string, window time.Duration) ([]string, error) {
	summary, err := c.summary(ctx, userID, window)
	if err != nil {
		return nil, err
	}
	return summary.Violations, nil
}

func (c *Client) summary(ctx context.Context, userID string, window time.Duration) (*summaryResponse, error) {
	timer := monitoring.NewTimer(c.metrics, "stats")

	endpoint := fmt.Sprintf("%s/v1/users/%s/summary?window=%s",
		c.baseURL, url.PathEscape(userID), window)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		timer.Stop(err)
		return nil, fmt.Errorf("stats request build failed: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		timer.Stop(err)
		return nil, fmt.Errorf("stats request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("stats service returned %d", resp.StatusCode)
		timer.Stop(err)
		return nil, err
	}

	var summary summaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		timer.Stop(err)
		return nil, fmt.Errorf("stats response decode failed: %w", err)
	}

	timer.Stop(nil)
	return &summary, nil
}
