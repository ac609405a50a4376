package persona

import (
	"context"

	"go.uber.org/zap"

	"github.com/jiaa-labs/alpine-core/internal/domain/detect"
	"github.com/jiaa-labs/alpine-core/internal/domain/session"
)

// Generator is the external text-generation capability. One call per
// decision; retry policy belongs to callers.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// TargetDetector resolves a kill target from a running-app list. Satisfied
// by *detect.Detector.
type TargetDetector interface {
	Detect(ctx context.Context, apps []string) detect.Result
}

// Engine is the persona decision engine.
type Engine struct {
	generator Generator
	detector  TargetDetector
	logger    *zap.Logger
}

// NewEngine creates a decision engine. detector may be nil; target
// resolution then falls back to memory aliases only.
func NewEngine(generator Generator, detector TargetDetector, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{generator: generator, detector: detector, logger: logger}
}

// Decide produces a structured decision for one user turn. Generation
// failures and unparseable output degrade to a fixed persona fallback;
// Decide never returns an error.
func (e *Engine) Decide(ctx context.Context, text string, sctx session.Context) Decision {
	raw, err := e.generator.Generate(ctx, buildPrompt(text, sctx))

	var decision Decision
	if err != nil {
		e.logger.Warn("generation call failed, using fallback decision", zap.Error(err))
		decision = fallbackDecision()
	} else if decision, err = parseDecision(raw); err != nil {
		e.logger.Warn("unparseable generation output, using fallback decision", zap.Error(err))
		decision = fallbackDecision()
	}

	// Safety rules outrank the model's own output.
	switch matchRule(text) {
	case ruleExcuse:
		if sctx.HasViolations() {
			e.logger.Info("excuse pattern with violation history, forcing refusal",
				zap.String("user_id", sctx.UserID))
			decision.Judgment = JudgmentPlay
			decision.ActionCode = ActionNone
			decision.ActionDetail = ""
			decision.Emotion = EmotionAngry
			if decision.Message == "" {
				decision.Message = "저번에도 그러셨잖아요! 안 됩니다, 주인님!"
			}
		}
	case ruleAgreement:
		decision.Intent = IntentCommand
		decision.Judgment = JudgmentPlay
		decision.ActionCode = ActionKillApp
		if decision.Emotion != EmotionSilly && decision.Emotion != EmotionAngry {
			decision.Emotion = EmotionSilly
		}
		if decision.Message == "" {
			decision.Message = "프로세스 종료합니다, 주인님."
		}
	}

	if decision.ActionCode == ActionKillApp && decision.ActionDetail == "" {
		decision.ActionDetail = e.resolveKillTarget(ctx, text, sctx)
	}

	if decision.ActionCode == actionGenerateNote {
		decision = e.rewriteNote(ctx, decision)
	}

	return decision
}

// resolveKillTarget finds a process name for a kill decision that arrived
// without one: running-apps marker in the turn text first, then the
// session's reported app list, then memory-excerpt aliases. An empty
// result means the caller treats the kill as a no-op.
func (e *Engine) resolveKillTarget(ctx context.Context, text string, sctx session.Context) string {
	apps := parseAppsMarker(text)
	if len(apps) == 0 {
		apps = sctx.RunningApps
	}
	if len(apps) > 0 && e.detector != nil {
		if res := e.detector.Detect(ctx, apps); res.Matched {
			return res.TargetApp
		}
	}
	return aliasFromMemory(sctx.MemoryExcerpt)
}

// rewriteNote converts GENERATE_NOTE into WRITE_FILE with generated
// content. Mandatory: GENERATE_NOTE is never a terminal action. If the
// summarization call fails the decision still leaves as WRITE_FILE with
// a persona-voiced placeholder body.
func (e *Engine) rewriteNote(ctx context.Context, d Decision) Decision {
	topic := d.ActionDetail
	if topic == "" {
		topic = "Summary"
	}

	content, err := e.generator.Generate(ctx, buildNotePrompt(topic))
	if err != nil || content == "" {
		e.logger.Warn("note generation failed", zap.String("topic", topic), zap.Error(err))
		content = "# " + topic + "\n\n(정리할 내용을 불러오지 못했어요. 다시 시도해 주세요, 주인님.)"
	}

	d.ActionCode = ActionWriteFile
	d.ActionDetail = noteFilename(topic)
	d.Message = content
	return d
}
