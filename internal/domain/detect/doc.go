// Package detect identifies games among a client's running applications.
//
// Detection is hybrid:
//   - Fast path: case-insensitive substring match against a static
//     known-game table. Bounded time, never calls out.
//   - Fallback: an external classifier consulted only when the fast path
//     misses and the app list is non-empty. Instructed to be conservative
//     (prefer false negatives). Any classifier failure degrades to "no
//     game detected" rather than surfacing an error.
//
// When the classifier returns multiple candidates the first list element
// is the kill target. Ties break by list order, not by confidence; if the
// classifier's ordering is non-deterministic, so is target selection.
package detect
