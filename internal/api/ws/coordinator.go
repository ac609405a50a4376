package ws

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/jiaa-labs/alpine-core/internal/domain/detect"
	"github.com/jiaa-labs/alpine-core/internal/domain/persona"
	"github.com/jiaa-labs/alpine-core/internal/domain/session"
)

// Detector runs the hybrid detection pipeline. Satisfied by
// *detect.Detector.
type Detector interface {
	Detect(ctx context.Context, apps []string) detect.Result
}

// DecisionEngine produces persona decisions for user turns. Satisfied by
// *persona.Engine.
type DecisionEngine interface {
	Decide(ctx context.Context, text string, sctx session.Context) persona.Decision
}

// Generator produces the short nag lines. Satisfied by the llm client.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Transcriber converts a buffered utterance to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, formatHint string) (string, error)
}

// Decryptor recovers clipboard plaintext from its encrypted parts.
type Decryptor func(ciphertext, key, iv, tag []byte) ([]byte, error)

// Metrics is the subset of the monitoring collector the coordinator
// records into.
type Metrics interface {
	RecordHeartbeat()
	RecordDetection(source string)
	RecordCommand(cmdType string)
	RecordNag()
	RecordAudioTurn(outcome string)
}

// Coordinator wires the detection, persona, and silence components into
// the streaming protocol. It holds no per-connection state; each
// connection gets a tracker.
type Coordinator struct {
	detector    Detector
	engine      DecisionEngine
	generator   Generator
	transcriber Transcriber
	decrypt     Decryptor
	contexts    *session.ContextBuilder
	silence     *session.Silence
	metrics     Metrics
	logger      *zap.Logger

	defaultUserID string
}

// NewCoordinator assembles a coordinator.
func NewCoordinator(
	detector Detector,
	engine DecisionEngine,
	generator Generator,
	transcriber Transcriber,
	decrypt Decryptor,
	contexts *session.ContextBuilder,
	silence *session.Silence,
	metrics Metrics,
	logger *zap.Logger,
	defaultUserID string,
) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultUserID == "" {
		defaultUserID = "dev1"
	}
	return &Coordinator{
		detector:      detector,
		engine:        engine,
		generator:     generator,
		transcriber:   transcriber,
		decrypt:       decrypt,
		contexts:      contexts,
		silence:       silence,
		metrics:       metrics,
		logger:        logger,
		defaultUserID: defaultUserID,
	}
}

// tracker is the per-connection state: session identity plus the audio
// turn in progress. Owned by the connection's task; never shared.
type tracker struct {
	sessionID string
	userID    string

	audioBuf  bytes.Buffer
	mediaInfo map[string]string
}

func (c *Coordinator) newTracker(sessionID string) *tracker {
	return &tracker{
		sessionID: sessionID,
		userID:    c.defaultUserID,
		mediaInfo: make(map[string]string),
	}
}

// HandleHeartbeat processes one heartbeat sample and returns the
// commands to emit, in order. The sample is consumed and discarded; at
// most one KILL_PROCESS is produced per tick, and a kill supersedes a
// pending nag.
func (c *Coordinator) HandleHeartbeat(ctx context.Context, t *tracker, msg ClientMessage) []Command {
	c.metrics.RecordHeartbeat()

	// Empty snapshot: skip detection entirely to avoid false positives.
	if len(msg.Apps) == 0 {
		return nil
	}

	if res := c.detector.Detect(ctx, msg.Apps); res.Matched {
		c.metrics.RecordDetection(string(res.Source))
		c.logger.Info("game detected",
			zap.String("session_id", t.sessionID),
			zap.String("target", res.TargetApp),
			zap.String("source", string(res.Source)),
		)

		var commands []Command
		if res.Message != "" {
			commands = append(commands, Command{Type: CommandShowMessage, Payload: res.Message})
		}
		// Kill priority: the nag path below never runs on a detection tick.
		commands = append(commands, Command{Type: CommandKillProcess, Payload: res.TargetApp})
		return commands
	}

	if len(msg.ClipboardPayload) == 0 {
		return nil
	}
	return c.maybeNag(ctx, t, msg)
}

// maybeNag evaluates the silence gate against decrypted clipboard context
// and produces at most one SHOW_MESSAGE.
func (c *Coordinator) maybeNag(ctx context.Context, t *tracker, msg ClientMessage) []Command {
	plaintext, err := c.decrypt(msg.ClipboardPayload, msg.ClipboardKey, msg.ClipboardIV, msg.ClipboardTag)
	if err != nil {
		// Undecryptable clipboard is just absent context, not an error.
		c.logger.Debug("clipboard decryption failed", zap.String("session_id", t.sessionID), zap.Error(err))
		return nil
	}

	clipboard := string(plaintext)
	quiet, eligible := c.silence.NagEligible(t.sessionID, clipboard)
	if !eligible {
		return nil
	}

	line, err := c.generator.Generate(ctx, nagPrompt(quiet, clipboard))
	if err != nil {
		c.logger.Warn("nag generation failed", zap.String("session_id", t.sessionID), zap.Error(err))
		return nil
	}

	c.metrics.RecordNag()
	return []Command{{Type: CommandShowMessage, Payload: strings.TrimSpace(line)}}
}

func nagPrompt(quiet time.Duration, clipboard string) string {
	return fmt.Sprintf(`You are "Alpine" (Tsundere AI). The user is your master ("주인님").
The user has been silent for %d minutes but just copied this text to the clipboard:

'''
%s
'''

If it is code or an error: scold them for struggling alone, or tease them.
If it is chat or prose: ask who they are talking to.

Keep it to one sentence. Start with "주인님,". Tone: cheeky/nagging. Language: Korean.`,
		int(quiet.Minutes()), clipboard)
}

// HandleAudioChunk buffers one chunk of the in-progress audio turn. When
// the chunk closes the utterance it returns the turn's result; otherwise
// it returns nil. An abandoned turn (connection drop before is_final)
// simply leaves the buffer to be discarded with the tracker.
func (c *Coordinator) HandleAudioChunk(ctx context.Context, t *tracker, msg ClientMessage) *AudioResult {
	t.audioBuf.Write(msg.AudioData)

	if msg.MediaInfoJSON != "" {
		if info := gjson.Parse(msg.MediaInfoJSON); info.IsObject() {
			info.ForEach(func(key, value gjson.Result) bool {
				t.mediaInfo[key.String()] = value.String()
				return true
			})
		}
	}

	if !msg.IsFinal {
		return nil
	}
	return c.finishAudioTurn(ctx, t)
}

// finishAudioTurn transcribes the buffered utterance and runs the
// decision engine. The buffer is consumed regardless of outcome.
func (c *Coordinator) finishAudioTurn(ctx context.Context, t *tracker) *AudioResult {
	audio := make([]byte, t.audioBuf.Len())
	copy(audio, t.audioBuf.Bytes())
	t.audioBuf.Reset()

	if userID := t.mediaInfo["user_id"]; userID != "" {
		t.userID = userID
	}
	format := t.mediaInfo["format"]

	transcript, err := c.transcriber.Transcribe(ctx, audio, format)
	if err != nil {
		c.logger.Warn("transcription failed", zap.String("session_id", t.sessionID), zap.Error(err))
		transcript = ""
	}

	if strings.TrimSpace(transcript) == "" {
		// Silence: skip the decision engine, no generation call wasted.
		c.metrics.RecordAudioTurn("no_speech")
		return &AudioResult{
			Transcript: "(No speech detected)",
			IntentJSON: "{}",
		}
	}

	c.silence.Touch(t.sessionID)

	sctx := c.contexts.Build(ctx, t.userID, nil)
	decision := c.engine.Decide(ctx, transcript, sctx)

	intentJSON, err := json.Marshal(decision.View())
	if err != nil {
		intentJSON = []byte("{}")
	}

	c.metrics.RecordAudioTurn("decided")
	return &AudioResult{
		Transcript:  transcript,
		IsEmergency: decision.Emotion == persona.EmotionEmergency,
		IntentJSON:  string(intentJSON),
	}
}
