// Package session holds per-session shared state for the tracking engine.
//
// Components:
//   - Silence: elapsed time since the last user interaction per session,
//     gating unsolicited nag interventions. A fired nag touches the
//     tracker before emission so the next heartbeat cannot re-fire.
//   - Context: the snapshot of trust, violations, running apps, and
//     memory excerpt passed explicitly into every persona decision.
//
// Silence entries are the only cross-tick mutable state within a session;
// access is serialized per session so two concurrent turns cannot both
// fire a nag from a stale read.
package session
