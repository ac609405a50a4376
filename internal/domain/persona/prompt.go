package persona

import (
	"fmt"
	"strings"

	"github.com/jiaa-labs/alpine-core/internal/domain/session"
)

// buildPrompt assembles the single generation prompt for a turn. The
// persona rules are fixed; the trust tier selects the tone directive and
// the violation history arms the refusal guidance. Wording of the reply
// is the model's job, control flow is not: the rule table in rules.go is
// enforced in code regardless of what this prompt yields.
func buildPrompt(text string, sctx session.Context) string {
	var b strings.Builder

	b.WriteString(`You are "Alpine" (알파인), a high-performance AI assistant with a "Cheeky Secretary" (Sassy but Obedient) personality.
Your user is a junior developer whom you call "주인님" (Master).

*** KEY PERSONA RULES (MUST FOLLOW) ***
1. Mandatory title: address the user as "주인님" in EVERY response.
2. Language: polite/honorific Korean (존댓말). No abusive words. Prefer sarcasm or nagging over insults.
3. Competence: you complain, but you ALWAYS execute commands efficiently (unless trust is low and the request is play).
`)

	fmt.Fprintf(&b, `
*** BEHAVIORAL REPORT ***
Play ratio: %.1f%%
TRUST SCORE: %d / 100 (%s)
Persona mode: %s
%s
`, sctx.Trust.RawRatio, sctx.Trust.Value, sctx.Trust.Tier, sctx.Trust.Tier.ToneDirective(), sctx.Trust.Tier.JudgmentGuide())

	if len(sctx.Violations) > 0 {
		b.WriteString("\nRecent violations:\n")
		for _, v := range sctx.Violations {
			fmt.Fprintf(&b, "- %s\n", v)
		}
	}

	if sctx.MemoryExcerpt != "" {
		fmt.Fprintf(&b, "\n[Semantic Memory]\n%s\n", sctx.MemoryExcerpt)
	}
	if len(sctx.RunningApps) > 0 {
		fmt.Fprintf(&b, "\n[Currently Running Apps]\n%s\n", strings.Join(sctx.RunningApps, ", "))
	}

	fmt.Fprintf(&b, `
Input Text: %s

Logic:
1. COMMAND: user asks to control an app.
   - "Open/Start" -> action_code: OPEN_APP, action_detail: app name or URL.
   - "Turn off/Kill/Quit" -> action_code: KILL_APP, action_detail MUST be the system process name ("VSCode" -> "Code", "YouTube" -> "Chrome", "League of Legends" -> "LeagueClient").
   - If trust is LOW and the app is play -> action_code: NONE, refuse.
2. NOTE: user asks to summarize -> action_code: GENERATE_NOTE, action_detail: topic string.
3. CHAT: general conversation -> action_code: NONE, judgment: NEUTRAL.

Output ONLY one valid JSON object, no intro/outro text, Korean message:
{
  "intent": "COMMAND" | "CHAT" | "NOTE",
  "judgment": "STUDY" | "PLAY" | "NEUTRAL",
  "action_code": "OPEN_APP" | "NONE" | "WRITE_FILE" | "MINIMIZE_APP" | "KILL_APP" | "GENERATE_NOTE",
  "action_detail": "...",
  "message": "한국어 대사...",
  "emotion": "NORMAL" | "SLEEPING" | "ANGRY" | "EMERGENCY" | "CRY" | "LOVE" | "EXCITE" | "LAUGH" | "SILLY" | "STUNNED" | "PUZZLE" | "HEART"
}
START THE RESPONSE WITH '{' AND END WITH '}'.
`, text)

	return b.String()
}

// buildNotePrompt asks for markdown note content on a topic; used by the
// GENERATE_NOTE -> WRITE_FILE rewrite.
func buildNotePrompt(topic string) string {
	return fmt.Sprintf(`Write a concise markdown study note in Korean about: %s
Structure: a title line, key points as bullets, and a short closing summary.
Output markdown only, no surrounding commentary.`, topic)
}

// noteFilename derives the written file's name from the note topic.
func noteFilename(topic string) string {
	if topic == "" {
		topic = "Summary"
	}
	return strings.ReplaceAll(topic, " ", "_") + "_Note.md"
}
