package persona

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchRule(t *testing.T) {
	tests := []struct {
		text string
		want ruleKind
	}{
		{"한 판만 할게", ruleExcuse},
		{"하나만 더 하고 끌게요 아니 조금만", ruleAgreement}, // agreement outranks excuse
		{"진짜 마지막", ruleExcuse},
		{"알았어요 그만할게요", ruleAgreement},
		{"이제 끌게", ruleAgreement},
		{"종료할게", ruleAgreement},
		{"오늘 날씨 어때", ruleNone},
		{"", ruleNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, matchRule(tt.text), "text: %q", tt.text)
	}
}

func TestParseAppsMarker(t *testing.T) {
	apps := parseAppsMarker("알았어 [currently running apps: chrome.exe, Code.exe , slack.exe]")
	assert.Equal(t, []string{"chrome.exe", "Code.exe", "slack.exe"}, apps)

	apps = parseAppsMarker("[현재 실행 중인 앱: LeagueClient.exe]")
	assert.Equal(t, []string{"LeagueClient.exe"}, apps)

	assert.Nil(t, parseAppsMarker("no marker here"))
	assert.Empty(t, parseAppsMarker("[currently running apps: ]"))
}

func TestAliasFromMemory(t *testing.T) {
	assert.Equal(t, "LeagueClient", aliasFromMemory("어제 롤 3시간"))
	assert.Equal(t, "LeagueClient", aliasFromMemory("Riot Client detected at 21:00"))
	assert.Equal(t, "Minecraft", aliasFromMemory("마인크래프트 서버 접속 기록"))
	assert.Equal(t, "", aliasFromMemory("백준 문제 풀이 기록"))
	assert.Equal(t, "", aliasFromMemory(""))
}

func TestExtractObject(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "bare object", raw: `{"a":1}`, want: `{"a":1}`},
		{name: "nested object", raw: `x {"a":{"b":2}} y`, want: `{"a":{"b":2}}`},
		{name: "brace inside string", raw: `{"msg":"use { wisely }"}`, want: `{"msg":"use { wisely }"}`},
		{name: "escaped quote", raw: `{"msg":"she said \"{\" ok"}`, want: `{"msg":"she said \"{\" ok"}`},
		{name: "no object", raw: "plain text", wantErr: true},
		{name: "unbalanced", raw: `{"a":1`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractObject(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
