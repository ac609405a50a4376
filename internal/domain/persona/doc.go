// Package persona owns the decision layer of the intervention engine.
//
// The engine builds one prompt per turn (persona rules + trust tier tone
// + violation summary + user text), issues exactly one generation call,
// and post-processes the result deterministically:
//
//   - An ordered rule table (excuse / agreement patterns) is evaluated
//     before the model's own intent is trusted. Refusing a "one more
//     game" excuse and killing on surrender are safety properties the
//     prompt alone cannot guarantee, so they are forced in code.
//   - GENERATE_NOTE is never a terminal action: it is always rewritten to
//     WRITE_FILE with summarized content and a derived filename.
//   - A forced KILL_APP with no target resolves one in order: running-apps
//     marker in the input, then memory-excerpt aliases, then empty (an
//     empty-target kill is a caller-side no-op).
//
// Generation output is loosely-typed LLM JSON; parsing is tolerant
// (outermost balanced object span, extra fields ignored) and parse
// failures return a fixed persona-voiced fallback, never an error.
//
// Retry policy belongs to callers; this layer makes one attempt.
package persona
