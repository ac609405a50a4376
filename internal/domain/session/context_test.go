package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jiaa-labs/alpine-core/internal/domain/trust"
)

type fakeStats struct {
	ratio      float64
	violations []string
	err        error
}

func (f *fakeStats) PlayRatio(ctx context.Context, userID string, window time.Duration) (float64, error) {
	return f.ratio, f.err
}

func (f *fakeStats) RecentViolations(ctx context.Context, userID string, window time.Duration) ([]string, error) {
	return f.violations, f.err
}

func TestBuildContext(t *testing.T) {
	b := NewContextBuilder(&fakeStats{ratio: 50, violations: []string{"게임 감지"}}, time.Hour, "dev1", nil)

	sctx := b.Build(context.Background(), "user-7", []string{"chrome.exe"})

	assert.Equal(t, "user-7", sctx.UserID)
	assert.Equal(t, trust.Calculate(50), sctx.Trust)
	assert.True(t, sctx.HasViolations())
	assert.Equal(t, []string{"chrome.exe"}, sctx.RunningApps)
}

func TestBuildContextDefaultsUser(t *testing.T) {
	b := NewContextBuilder(nil, time.Hour, "dev1", nil)
	sctx := b.Build(context.Background(), "", nil)
	assert.Equal(t, "dev1", sctx.UserID)
}

func TestBuildContextStatsFailureIsNeutral(t *testing.T) {
	b := NewContextBuilder(&fakeStats{err: errors.New("down")}, time.Hour, "dev1", nil)

	sctx := b.Build(context.Background(), "dev1", nil)

	assert.Equal(t, trust.Calculate(0), sctx.Trust)
	assert.False(t, sctx.HasViolations())
}
