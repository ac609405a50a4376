package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jiaa-labs/alpine-core/internal/domain/trust"
)

// Context is the explicit per-session snapshot handed to the persona
// engine on every decision. It is owned by the connection's task; no
// ambient global lookup.
type Context struct {
	UserID        string
	Trust         trust.Score
	Violations    []string
	RunningApps   []string
	MemoryExcerpt string
}

// HasViolations reports whether the session carries recent violation
// history, which arms the excuse-refusal rule.
func (c Context) HasViolations() bool {
	return len(c.Violations) > 0
}

// StatsSource supplies behavioral statistics for context assembly.
// Implemented by the statistics provider.
type StatsSource interface {
	PlayRatio(ctx context.Context, userID string, window time.Duration) (float64, error)
	RecentViolations(ctx context.Context, userID string, window time.Duration) ([]string, error)
}

// ContextBuilder assembles per-turn session contexts from the statistics
// collaborator. Collaborator failures degrade to a neutral context; a
// turn is never blocked on statistics.
type ContextBuilder struct {
	stats       StatsSource
	window      time.Duration
	defaultUser string
	logger      *zap.Logger
}

// NewContextBuilder creates a builder. stats may be nil, yielding neutral
// contexts.
func NewContextBuilder(stats StatsSource, window time.Duration, defaultUser string, logger *zap.Logger) *ContextBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultUser == "" {
		defaultUser = "dev1"
	}
	return &ContextBuilder{stats: stats, window: window, defaultUser: defaultUser, logger: logger}
}

// Build assembles the decision context for one turn.
func (b *ContextBuilder) Build(ctx context.Context, userID string, runningApps []string) Context {
	if userID == "" {
		userID = b.defaultUser
	}

	sctx := Context{
		UserID:      userID,
		Trust:       trust.Calculate(0),
		RunningApps: runningApps,
	}
	if b.stats == nil {
		return sctx
	}

	if ratio, err := b.stats.PlayRatio(ctx, userID, b.window); err != nil {
		b.logger.Debug("play ratio unavailable", zap.String("user_id", userID), zap.Error(err))
	} else {
		sctx.Trust = trust.Calculate(ratio)
	}

	if violations, err := b.stats.RecentViolations(ctx, userID, b.window); err != nil {
		b.logger.Debug("violations unavailable", zap.String("user_id", userID), zap.Error(err))
	} else {
		sctx.Violations = violations
	}

	return sctx
}
