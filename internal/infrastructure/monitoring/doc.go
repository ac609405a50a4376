// Package monitoring exposes Prometheus metrics for the tracking engine.
//
// Metric families:
//   - HTTP request counters/histograms (via the gin middleware)
//   - Heartbeats, detections by source, commands by type, nags
//   - Audio turns and their outcomes
//   - Collaborator calls (generate/classify/transcribe/stats) with
//     durations and error counters
//   - Active websocket session gauge
//
// A JSON snapshot of headline values backs the /stats endpoint.
package monitoring
