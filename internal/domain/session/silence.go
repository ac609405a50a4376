package session

import (
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// Silence tracks how long each session has gone without user interaction.
type Silence struct {
	mu      sync.Mutex
	entries map[string]*silenceEntry

	threshold time.Duration
	minChars  int
	now       func() time.Time
}

type silenceEntry struct {
	mu                sync.Mutex
	lastInteractionAt time.Time
}

// NewSilence creates a tracker. threshold is the minimum quiet period
// before a nag becomes eligible; minChars is the minimum candidate text
// length. Both are policy knobs surfaced through configuration.
func NewSilence(threshold time.Duration, minChars int) *Silence {
	return &Silence{
		entries:   make(map[string]*silenceEntry),
		threshold: threshold,
		minChars:  minChars,
		now:       time.Now,
	}
}

// WithClock overrides the tracker's time source, for tests.
func (s *Silence) WithClock(now func() time.Time) *Silence {
	s.now = now
	return s
}

func (s *Silence) entry(sessionID string) *silenceEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[sessionID]
	if !ok {
		e = &silenceEntry{lastInteractionAt: s.now()}
		s.entries[sessionID] = e
	}
	return e
}

// Touch records an interaction for the session, resetting its quiet timer.
func (s *Silence) Touch(sessionID string) {
	e := s.entry(sessionID)
	e.mu.Lock()
	e.lastInteractionAt = s.now()
	e.mu.Unlock()
}

// Duration reports the elapsed time since the session's last interaction.
// A session seen for the first time starts its timer at now.
func (s *Silence) Duration(sessionID string) time.Duration {
	e := s.entry(sessionID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return s.now().Sub(e.lastInteractionAt)
}

// NagEligible reports whether an unsolicited intervention may fire for the
// session given the candidate text, and if so consumes the eligibility by
// touching the session immediately. Read and reset happen under the
// session's lock, so concurrent turns cannot both fire from a stale read.
func (s *Silence) NagEligible(sessionID, candidate string) (time.Duration, bool) {
	// Characters, not bytes: Korean clipboard text is three bytes per rune.
	if utf8.RuneCountInString(strings.TrimSpace(candidate)) <= s.minChars {
		return 0, false
	}

	e := s.entry(sessionID)
	e.mu.Lock()
	defer e.mu.Unlock()

	now := s.now()
	quiet := now.Sub(e.lastInteractionAt)
	if quiet <= s.threshold {
		return quiet, false
	}

	// Anti-spam invariant: consume eligibility before the nag is emitted.
	e.lastInteractionAt = now
	return quiet, true
}

// Forget drops the session's entry, for use on session teardown.
func (s *Silence) Forget(sessionID string) {
	s.mu.Lock()
	delete(s.entries, sessionID)
	s.mu.Unlock()
}
