package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestSilence(t *testing.T) (*Silence, *time.Time) {
	t.Helper()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := NewSilence(5*time.Minute, 10).WithClock(func() time.Time { return now })
	return s, &now
}

func TestNagEligibleAfterThreshold(t *testing.T) {
	s, now := newTestSilence(t)
	s.Touch("sess-1")

	*now = now.Add(6 * time.Minute)
	quiet, ok := s.NagEligible("sess-1", "some clipboard content long enough")
	assert.True(t, ok)
	assert.Equal(t, 6*time.Minute, quiet)
}

func TestNagNotEligibleUnderThreshold(t *testing.T) {
	s, now := newTestSilence(t)
	s.Touch("sess-1")

	*now = now.Add(4 * time.Minute)
	_, ok := s.NagEligible("sess-1", "some clipboard content long enough")
	assert.False(t, ok)
}

func TestNagShortCandidateRejected(t *testing.T) {
	s, now := newTestSilence(t)
	s.Touch("sess-1")
	*now = now.Add(time.Hour)

	_, ok := s.NagEligible("sess-1", "short")
	assert.False(t, ok)

	_, ok = s.NagEligible("sess-1", "   padded    ")
	assert.False(t, ok, "whitespace does not count toward the minimum")
}

func TestNagCandidateLengthCountsRunes(t *testing.T) {
	s, now := newTestSilence(t)
	s.Touch("sess-1")
	*now = now.Add(time.Hour)

	// Ten Hangul runes are thirty bytes but still under the minimum.
	_, ok := s.NagEligible("sess-1", "공부합시다주인님열심")
	assert.False(t, ok)

	_, ok = s.NagEligible("sess-1", "공부합시다주인님열심히")
	assert.True(t, ok, "eleven runes clears a ten character minimum")
}

func TestNagFiringConsumesEligibility(t *testing.T) {
	s, now := newTestSilence(t)
	s.Touch("sess-1")
	*now = now.Add(10 * time.Minute)

	_, ok := s.NagEligible("sess-1", "clipboard content that qualifies")
	assert.True(t, ok)

	// Immediate repeat with qualifying content must not fire again.
	_, ok = s.NagEligible("sess-1", "clipboard content that qualifies")
	assert.False(t, ok)

	assert.Equal(t, time.Duration(0), s.Duration("sess-1"))
}

func TestTouchResetsDuration(t *testing.T) {
	s, now := newTestSilence(t)
	s.Touch("sess-1")
	*now = now.Add(3 * time.Minute)
	assert.Equal(t, 3*time.Minute, s.Duration("sess-1"))

	s.Touch("sess-1")
	assert.Equal(t, time.Duration(0), s.Duration("sess-1"))
}

func TestSessionsIndependent(t *testing.T) {
	s, now := newTestSilence(t)
	s.Touch("a")
	*now = now.Add(10 * time.Minute)
	s.Touch("b")

	_, okA := s.NagEligible("a", "clipboard content that qualifies")
	_, okB := s.NagEligible("b", "clipboard content that qualifies")
	assert.True(t, okA)
	assert.False(t, okB)
}

func TestConcurrentTurnsFireAtMostOnce(t *testing.T) {
	s := NewSilence(time.Millisecond, 3)
	s.Touch("sess-1")
	time.Sleep(5 * time.Millisecond)

	var wg sync.WaitGroup
	var mu sync.Mutex
	fired := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := s.NagEligible("sess-1", "qualifying clipboard text"); ok {
				mu.Lock()
				fired++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, fired)
}
