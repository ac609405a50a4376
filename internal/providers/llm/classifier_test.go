package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	response string
	err      error
	prompt   string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func TestClassifyPositive(t *testing.T) {
	gen := &fakeGenerator{response: `Sure!
` + "```json" + `
{"detected_games": ["obscure.exe"], "is_game_detected": true, "reason": "known title"}
` + "```"}
	c := NewClassifier(gen)

	verdict, err := c.Classify(context.Background(), []string{"obscure.exe", "chrome.exe"})
	require.NoError(t, err)

	assert.True(t, verdict.IsDetected)
	assert.Equal(t, []string{"obscure.exe"}, verdict.DetectedGames)
	assert.Contains(t, gen.prompt, "obscure.exe, chrome.exe")
	assert.Contains(t, gen.prompt, "Be conservative")
}

func TestClassifyNegative(t *testing.T) {
	gen := &fakeGenerator{response: `{"detected_games": [], "is_game_detected": false, "reason": "dev tools only"}`}
	c := NewClassifier(gen)

	verdict, err := c.Classify(context.Background(), []string{"vscode.exe"})
	require.NoError(t, err)
	assert.False(t, verdict.IsDetected)
	assert.Empty(t, verdict.DetectedGames)
}

func TestClassifyGeneratorError(t *testing.T) {
	c := NewClassifier(&fakeGenerator{err: errors.New("rate limited")})

	_, err := c.Classify(context.Background(), []string{"x.exe"})
	assert.Error(t, err)
}

func TestClassifyMalformedOutput(t *testing.T) {
	c := NewClassifier(&fakeGenerator{response: "I could not decide."})

	_, err := c.Classify(context.Background(), []string{"x.exe"})
	assert.Error(t, err)
}
