// Package main is the entry point for the alpine-core server.
//
// The server sits between the desktop monitoring agent and the
// generation, transcription, and statistics collaborators:
//
//	Agent (heartbeats, audio) → alpine-core → Gemini (generation)
//	                                       → STT service (transcription)
//	                                       → Stats service (play ratio)
//
// It provides:
//   - WebSocket streaming for heartbeat and audio turn protocols
//   - REST chat endpoint sharing the same decision engine
//   - Prometheus metrics and a JSON stats view
//   - Rate limiting and graceful shutdown
//
// Configuration comes from environment variables with CLI flag overrides.
//
// Usage:
//
//	./server -port 8000
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
