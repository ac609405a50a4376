package detect

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Source identifies which detection path produced a result.
type Source string

const (
	SourceFastMatch  Source = "FAST_MATCH"
	SourceClassifier Source = "CLASSIFIER"
)

// Result is the outcome of one detection pass. Created fresh per
// heartbeat and never mutated afterwards.
type Result struct {
	Matched    bool
	TargetApp  string
	Source     Source
	Confidence float64
	Message    string
}

// Classification is the external classifier's verdict.
type Classification struct {
	DetectedGames []string `json:"detected_games"`
	IsDetected    bool     `json:"is_game_detected"`
	Reason        string   `json:"reason"`
}

// Classifier is the external capability consulted when the fast path
// misses. Implementations must be conservative: browsers, IDEs, and
// communication tools are not games unless unambiguous.
type Classifier interface {
	Classify(ctx context.Context, apps []string) (Classification, error)
}

// knownGames is the static fast-path table. Substring matched,
// case-insensitive. Includes launcher processes and Korean titles.
var knownGames = []string{
	"League of Legends", "LeagueClient", "Riot Client",
	"Minecraft", "Steam", "Epic Games",
	"Valorant", "PUBG", "Overwatch",
	"Genshin Impact", "원신",
	"MapleStory", "메이플스토리",
	"Lost Ark", "로스트아크",
	"Diablo", "StarCraft", "스타크래프트",
	"FIFA", "Fortnite", "포트나이트",
	"Roblox", "Among Us",
	"Apex Legends", "Call of Duty",
	"World of Warcraft", "WoW",
	"Dota 2", "Counter-Strike", "CS2",
	"Hearthstone", "하스스톤",
	"Battle.net", "Battle.Net",
	"BlueStacks", // mobile game emulator
}

// Detector runs the hybrid detection pipeline.
type Detector struct {
	classifier Classifier
	logger     *zap.Logger
}

// New creates a detector. classifier may be nil, in which case only the
// fast path runs.
func New(classifier Classifier, logger *zap.Logger) *Detector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Detector{classifier: classifier, logger: logger}
}

// QuickMatch runs only the fast path and reports the first app that
// matches the known-game table.
func QuickMatch(apps []string) (string, bool) {
	for _, app := range apps {
		lower := strings.ToLower(app)
		for _, game := range knownGames {
			if strings.Contains(lower, strings.ToLower(game)) {
				return app, true
			}
		}
	}
	return "", false
}

// Detect classifies the running app list. The fast path completes in
// bounded time regardless of classifier availability; the fallback is
// invoked only when the fast path misses and apps is non-empty.
// Classifier failures never propagate: they degrade to no detection.
func (d *Detector) Detect(ctx context.Context, apps []string) Result {
	if app, ok := QuickMatch(apps); ok {
		return Result{
			Matched:    true,
			TargetApp:  app,
			Source:     SourceFastMatch,
			Confidence: 1.0,
			Message:    fmt.Sprintf("🎮 %s 감지됨! 공부 시간에 게임은 안 돼!", app),
		}
	}

	if len(apps) == 0 || d.classifier == nil {
		return Result{}
	}

	verdict, err := d.classifier.Classify(ctx, apps)
	if err != nil {
		d.logger.Warn("classifier unavailable, treating as no detection", zap.Error(err))
		return Result{}
	}
	if !verdict.IsDetected || len(verdict.DetectedGames) == 0 {
		return Result{}
	}

	// First element is authoritative for the kill target.
	target := verdict.DetectedGames[0]
	return Result{
		Matched:    true,
		TargetApp:  target,
		Source:     SourceClassifier,
		Confidence: 0.8,
		Message:    fmt.Sprintf("🎮 AI가 %s을(를) 게임으로 감지했어! 공부해!", target),
	}
}
