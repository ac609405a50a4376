package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/jiaa-labs/alpine-core/internal/domain/detect"
)

// Generator is the minimal capability the classifier needs; *Client
// satisfies it.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Classifier implements detect.Classifier on a text generator.
type Classifier struct {
	generator Generator
}

// NewClassifier creates a generator-backed app classifier.
func NewClassifier(generator Generator) *Classifier {
	return &Classifier{generator: generator}
}

const classifyPromptTemplate = `You are a strict study supervisor. Analyze the list of running applications and identify any games or gaming-related applications.

Running Applications:
%s

Respond in JSON format:
{
    "detected_games": ["List of game application names found"],
    "is_game_detected": true/false,
    "reason": "Brief explanation"
}

Rules:
- Games include: video games, mobile game emulators, gaming launchers (Steam, Epic Games, Riot Client, etc.)
- NOT games: browsers, IDEs, productivity apps, music players, communication apps (unless clearly gaming-related)
- Be conservative: if unsure, do NOT mark as game

IMPORTANT: Output ONLY the JSON object. No explanations.`

// Classify asks the model whether the app list contains games. Output is
// tolerant-parsed; a response without a JSON object is an error the
// detector degrades on.
func (c *Classifier) Classify(ctx context.Context, apps []string) (detect.Classification, error) {
	prompt := fmt.Sprintf(classifyPromptTemplate, strings.Join(apps, ", "))

	raw, err := c.generator.Generate(ctx, prompt)
	if err != nil {
		return detect.Classification{}, err
	}

	span := objectSpan(raw)
	if span == "" || !gjson.Valid(span) {
		return detect.Classification{}, errors.New("classifier returned no JSON object")
	}

	obj := gjson.Parse(span)
	verdict := detect.Classification{
		IsDetected: obj.Get("is_game_detected").Bool(),
		Reason:     obj.Get("reason").String(),
	}
	for _, g := range obj.Get("detected_games").Array() {
		if name := g.String(); name != "" {
			verdict.DetectedGames = append(verdict.DetectedGames, name)
		}
	}
	return verdict, nil
}

// objectSpan trims the raw response to its outermost {...} span,
// discarding prose and code fences.
func objectSpan(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return ""
	}
	return raw[start : end+1]
}
