package persona

import (
	"regexp"
	"strings"
)

// ruleKind distinguishes the forced-decision templates.
type ruleKind int

const (
	ruleNone ruleKind = iota
	// ruleExcuse: "one more game" stalling. With recent violations on
	// record the engine refuses regardless of what the model said.
	ruleExcuse
	// ruleAgreement: user surrenders and agrees to stop. The engine
	// forces an immediate kill command.
	ruleAgreement
)

// excusePatterns match attempts to keep playing. Ordered; first hit wins.
var excusePatterns = []string{
	"한 판만",
	"한판만",
	"하나만 더",
	"조금만 더",
	"조금만",
	"이번만",
	"진짜 마지막",
	"마지막 한 판",
	"마지막",
}

// agreementPatterns match consent to stop playing.
var agreementPatterns = []string{
	"알았어",
	"알겠어",
	"그만할게",
	"그만 할게",
	"이제 끌게",
	"끌게",
	"종료할게",
	"종료 할게",
}

// matchRule evaluates the ordered rule table against the raw input text.
// Agreement outranks excuse: "알았어, 마지막이었어" is a surrender, not a
// stall.
func matchRule(text string) ruleKind {
	for _, p := range agreementPatterns {
		if strings.Contains(text, p) {
			return ruleAgreement
		}
	}
	for _, p := range excusePatterns {
		if strings.Contains(text, p) {
			return ruleExcuse
		}
	}
	return ruleNone
}

// appsMarkerRe extracts the running-apps marker a client may embed in the
// turn text. Both the English and Korean marker forms are accepted.
var appsMarkerRe = regexp.MustCompile(`\[(?:currently running apps|현재 실행 중인 앱):\s*([^\]]+)\]`)

// parseAppsMarker returns the app list embedded in text, if any.
func parseAppsMarker(text string) []string {
	m := appsMarkerRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	var apps []string
	for _, part := range strings.Split(m[1], ",") {
		if app := strings.TrimSpace(part); app != "" {
			apps = append(apps, app)
		}
	}
	return apps
}

// gameAliases maps memory-excerpt mentions to canonical process names.
// Scanned in order; first hit wins.
var gameAliases = []struct {
	markers []string
	process string
}{
	{markers: []string{"League", "Riot", "롤"}, process: "LeagueClient"},
	{markers: []string{"Minecraft", "마인크래프트"}, process: "Minecraft"},
	{markers: []string{"Overwatch", "오버워치"}, process: "Overwatch"},
	{markers: []string{"MapleStory", "메이플"}, process: "MapleStory"},
}

// aliasFromMemory scans a memory excerpt for known game mentions and
// returns the canonical process name.
func aliasFromMemory(excerpt string) string {
	if excerpt == "" {
		return ""
	}
	for _, alias := range gameAliases {
		for _, marker := range alias.markers {
			if strings.Contains(excerpt, marker) {
				return alias.process
			}
		}
	}
	return ""
}
