package persona

import (
	"errors"

	"github.com/tidwall/gjson"
)

var errNoJSON = errors.New("no JSON object in generation output")

// extractObject returns the outermost balanced {...} span in raw.
// Generation output routinely carries prose or code fences around the
// object; everything outside the span is discarded. Braces inside JSON
// strings are skipped.
func extractObject(raw string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			if start >= 0 {
				inString = true
			}
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return raw[start : i+1], nil
			}
		}
	}
	return "", errNoJSON
}

// parseDecision converts raw generation output into a Decision.
// Unknown fields are ignored; intent, judgment, action_code, and message
// are required. Returns errNoJSON-wrapped failures so callers can fall
// back rather than crash.
func parseDecision(raw string) (Decision, error) {
	span, err := extractObject(raw)
	if err != nil {
		return Decision{}, err
	}
	if !gjson.Valid(span) {
		return Decision{}, errNoJSON
	}

	obj := gjson.Parse(span)
	intent := obj.Get("intent")
	judgment := obj.Get("judgment")
	action := obj.Get("action_code")
	message := obj.Get("message")
	if !intent.Exists() || !judgment.Exists() || !action.Exists() || !message.Exists() {
		return Decision{}, errors.New("generation output missing required fields")
	}

	d := Decision{
		Intent:       Intent(intent.String()),
		Judgment:     Judgment(judgment.String()),
		ActionCode:   ActionCode(action.String()),
		ActionDetail: obj.Get("action_detail").String(),
		Message:      message.String(),
		Emotion:      Emotion(obj.Get("emotion").String()),
	}
	if d.Emotion == "" {
		d.Emotion = EmotionNormal
	}
	return d, nil
}
