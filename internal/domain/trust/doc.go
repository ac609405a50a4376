// Package trust derives a bounded trust score from recent activity.
//
// The score is a pure function of the play/study ratio reported by the
// statistics collaborator and feeds the persona engine's tone and refusal
// policy. Tiers:
//   - HIGH  (score >= 70): cheeky but obedient
//   - MID   (40 <= score < 70): strict, skeptical
//   - LOW   (score < 40): cold, refuses play requests
package trust
