// Package llm implements the text-generation and app-classification
// capabilities on Google's Gemini API.
//
// Both capabilities share one genai client; calls run through the
// resilience breaker and are timed into the collaborator metrics. An open
// breaker or API failure surfaces as an error to callers, which degrade
// to their own safe defaults (no detection, fallback decision).
package llm
