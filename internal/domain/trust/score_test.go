package trust

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateTiers(t *testing.T) {
	tests := []struct {
		name      string
		ratio     float64
		wantScore int
		wantTier  Tier
	}{
		{name: "low play ratio is high trust", ratio: 10, wantScore: 85, wantTier: TierHigh},
		{name: "mid boundary lands exactly on 40", ratio: 40, wantScore: 40, wantTier: TierMid},
		{name: "heavy play drops to low", ratio: 60, wantScore: 10, wantTier: TierLow},
		{name: "zero ratio is perfect trust", ratio: 0, wantScore: 100, wantTier: TierHigh},
		{name: "ratio past formula floor clamps to zero", ratio: 100, wantScore: 0, wantTier: TierLow},
		{name: "high tier boundary", ratio: 20, wantScore: 70, wantTier: TierHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.ratio)
			assert.Equal(t, tt.wantScore, got.Value)
			assert.Equal(t, tt.wantTier, got.Tier)
			assert.Equal(t, tt.ratio, got.RawRatio)
		})
	}
}

func TestCalculateBoundedAndMonotone(t *testing.T) {
	prev := 101
	for r := 0.0; r <= 100.0; r += 0.5 {
		s := Calculate(r)
		assert.GreaterOrEqual(t, s.Value, 0)
		assert.LessOrEqual(t, s.Value, 100)
		assert.LessOrEqual(t, s.Value, prev, "score must be non-increasing in ratio")
		prev = s.Value
	}
}

func TestToneDirectivesDiffer(t *testing.T) {
	assert.NotEqual(t, TierHigh.ToneDirective(), TierLow.ToneDirective())
	assert.NotEqual(t, TierMid.JudgmentGuide(), TierLow.JudgmentGuide())
}
