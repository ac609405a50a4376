package ws

// Client message types.
const (
	msgHeartbeat  = "heartbeat"
	msgAudioChunk = "audio_chunk"
	msgAudioEnd   = "audio_end"
	msgPing       = "ping"
)

// ClientMessage is one inbound streaming message. Heartbeat and audio
// fields are populated according to Type; byte fields travel base64 in
// JSON.
type ClientMessage struct {
	Type string `json:"type"`

	// Heartbeat fields
	Apps             []string `json:"apps,omitempty"`
	ClipboardPayload []byte   `json:"clipboard_payload,omitempty"`
	ClipboardKey     []byte   `json:"clipboard_key,omitempty"`
	ClipboardIV      []byte   `json:"clipboard_iv,omitempty"`
	ClipboardTag     []byte   `json:"clipboard_tag,omitempty"`

	// Audio-turn fields
	AudioData     []byte `json:"audio_data,omitempty"`
	IsFinal       bool   `json:"is_final,omitempty"`
	MediaInfoJSON string `json:"media_info_json,omitempty"`
}

// CommandType classifies an outbound command.
type CommandType string

const (
	CommandNone        CommandType = "NONE"
	CommandKillProcess CommandType = "KILL_PROCESS"
	CommandShowMessage CommandType = "SHOW_MESSAGE"
)

// Command is one client-executable instruction.
type Command struct {
	Type    CommandType `json:"type"`
	Payload string      `json:"payload"`
}

// AudioResult closes an audio turn.
type AudioResult struct {
	Transcript  string `json:"transcript"`
	IsEmergency bool   `json:"is_emergency"`
	IntentJSON  string `json:"intent_json"`
}

// ServerMessage is one outbound streaming message.
type ServerMessage struct {
	Type        string       `json:"type"` // "command", "audio_result", "system", "error", "pong"
	Command     *Command     `json:"command,omitempty"`
	AudioResult *AudioResult `json:"audio_result,omitempty"`
	Message     string       `json:"message,omitempty"`
}
