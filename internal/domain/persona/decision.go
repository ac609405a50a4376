package persona

// Intent classifies what the user wanted from a turn.
type Intent string

const (
	IntentCommand Intent = "COMMAND"
	IntentChat    Intent = "CHAT"
	IntentNote    Intent = "NOTE"
)

// Judgment classifies the turn as productive or not.
type Judgment string

const (
	JudgmentStudy   Judgment = "STUDY"
	JudgmentPlay    Judgment = "PLAY"
	JudgmentNeutral Judgment = "NEUTRAL"
)

// ActionCode is the client-executable action attached to a decision.
type ActionCode string

const (
	ActionOpenApp     ActionCode = "OPEN_APP"
	ActionKillApp     ActionCode = "KILL_APP"
	ActionWriteFile   ActionCode = "WRITE_FILE"
	ActionMinimizeApp ActionCode = "MINIMIZE_APP"
	ActionNone        ActionCode = "NONE"

	// actionGenerateNote only ever appears in raw generation output; the
	// engine rewrites it to ActionWriteFile before a Decision is returned.
	actionGenerateNote ActionCode = "GENERATE_NOTE"
)

// Emotion tags the avatar expression accompanying a message.
type Emotion string

const (
	EmotionNormal    Emotion = "NORMAL"
	EmotionSleeping  Emotion = "SLEEPING"
	EmotionAngry     Emotion = "ANGRY"
	EmotionEmergency Emotion = "EMERGENCY"
	EmotionCry       Emotion = "CRY"
	EmotionLove      Emotion = "LOVE"
	EmotionExcite    Emotion = "EXCITE"
	EmotionLaugh     Emotion = "LAUGH"
	EmotionSilly     Emotion = "SILLY"
	EmotionStunned   Emotion = "STUNNED"
	EmotionPuzzle    Emotion = "PUZZLE"
	EmotionHeart     Emotion = "HEART"
)

// Decision is the engine's structured verdict for one turn.
type Decision struct {
	Intent       Intent     `json:"intent"`
	Judgment     Judgment   `json:"judgment"`
	ActionCode   ActionCode `json:"action_code"`
	ActionDetail string     `json:"action_detail,omitempty"`
	Message      string     `json:"message"`
	Emotion      Emotion    `json:"emotion"`
}

// IntentView is the wire shape embedded in audio responses:
// {text, state, type, command, parameter, emotion}.
type IntentView struct {
	Text      string `json:"text"`
	State     string `json:"state"`
	Type      string `json:"type"`
	Command   string `json:"command"`
	Parameter string `json:"parameter"`
	Emotion   string `json:"emotion"`
}

// View converts a Decision into its client intent representation.
func (d Decision) View() IntentView {
	emotion := string(d.Emotion)
	if emotion == "" {
		emotion = string(EmotionNormal)
	}
	return IntentView{
		Text:      d.Message,
		State:     string(d.Judgment),
		Type:      string(d.Intent),
		Command:   string(d.ActionCode),
		Parameter: d.ActionDetail,
		Emotion:   emotion,
	}
}

// fallbackDecision is returned whenever generation output cannot be
// parsed. Persona-voiced, never a raw error.
func fallbackDecision() Decision {
	return Decision{
		Intent:     IntentChat,
		Judgment:   JudgmentNeutral,
		ActionCode: ActionNone,
		Message:    "뭐라고요? 목소리가 너무 작아서 못들었어요~ 바보 주인님♡",
		Emotion:    EmotionAngry,
	}
}
