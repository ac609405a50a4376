package trust

import "math"

// Tier buckets a score into a conversational stance.
type Tier string

const (
	TierHigh Tier = "HIGH"
	TierMid  Tier = "MID"
	TierLow  Tier = "LOW"
)

// Tier thresholds.
const (
	highThreshold = 70
	midThreshold  = 40
)

// Score holds a derived trust value. It carries no identity and is
// recomputed on demand from the current ratio.
type Score struct {
	RawRatio float64 `json:"raw_ratio"`
	Value    int     `json:"score"`
	Tier     Tier    `json:"tier"`
}

// Calculate converts a play ratio in [0,100] into a trust score.
// Formula: clamp(round(100 - ratio*1.5), 0, 100). A 10% play ratio yields
// 85; 50% yields 25. Deterministic, no hidden state.
func Calculate(ratio float64) Score {
	raw := 100.0 - ratio*1.5
	value := int(math.Round(raw))
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}

	return Score{
		RawRatio: ratio,
		Value:    value,
		Tier:     tierOf(value),
	}
}

func tierOf(value int) Tier {
	switch {
	case value >= highThreshold:
		return TierHigh
	case value >= midThreshold:
		return TierMid
	default:
		return TierLow
	}
}

// ToneDirective returns the persona tone instruction for the tier,
// interpolated into generation prompts.
func (t Tier) ToneDirective() string {
	switch t {
	case TierHigh:
		return "Cheeky but Obedient. You are helpful and cute. You tease the user lightly but do what they ask."
	case TierMid:
		return "Strict Secretary. You are skeptical. Nag them to study, but follow orders if they insist."
	default:
		return "Cold/Disappointed. You are upset by their laziness. Scold them politely but firmly. Refuse play."
	}
}

// JudgmentGuide returns the judgment stance for the tier.
func (t Tier) JudgmentGuide() string {
	switch t {
	case TierHigh:
		return "Judgment: GOOD. User is trustworthy. Grant requests with a smile."
	case TierMid:
		return "Judgment: WARNING. User is slacking. Give a stern warning before granting requests."
	default:
		return "Judgment: BAD. User is untrustworthy. Refuse 'Play' requests. Scold them for being lazy."
	}
}
