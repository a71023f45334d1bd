package backup

import (
	"strings"
	"testing"
	"time"

	"guild-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_FullDocument(t *testing.T) {
	raw := `{
		"version": 1,
		"generatedAt": "2026-10-01T10:00:00Z",
		"data": {
			"members": [
				{"name": "Alice", "v": [1, 2, 3, 4], "v2": 5, "d": [10, 20, 30, 40], "note": "tank"}
			],
			"config": {"bossMaxHp": 50000000, "ocrKeywords": "Attack", "tiers": {"s": 5, "a": 4, "b": 3, "c": 2, "d": 1}},
			"days1": 7,
			"days2": 6,
			"deadBosses": {"1": [true, false, 1, 0], "2": [true]},
			"language": "en",
			"mode": "damage",
			"filter": "risk"
		}
	}`

	restored, err := Decode([]byte(raw), domain.DefaultSettings())
	require.NoError(t, err)
	assert.Empty(t, restored.Issues)

	require.Len(t, restored.Members, 1)
	assert.Equal(t, domain.Member{
		Name: "Alice",
		V:    [4]int64{1, 2, 3, 4},
		V2:   5,
		D:    [4]int64{10, 20, 30, 40},
		Note: "tank",
	}, restored.Members[0])

	s := restored.Settings
	assert.Equal(t, 7, s.Days1)
	assert.Equal(t, 6, s.Days2)
	assert.Equal(t, domain.LanguageEN, s.Language)
	assert.Equal(t, domain.ModeDamage, s.Mode)
	assert.Equal(t, domain.FilterRisk, s.Filter)
	assert.Equal(t, [4]bool{true, false, true, false}, s.DeadBosses.Shadow)
	assert.True(t, s.DeadBosses.Destruction[0])
	assert.Equal(t, domain.TierThresholds{S: 5, A: 4, B: 3, C: 2, D: 1}, s.Config.Tiers)
	assert.Equal(t, int64(50_000_000), s.Config.BossMaxHP)
	assert.Equal(t, "Attack", s.Config.OCRKeywords)
}

func TestDecode_BareDataAndDefaults(t *testing.T) {
	current := domain.DefaultSettings()
	current.Days1 = 9

	raw := `{"members": [{"v": [1, "x"], "v2": -4}, 7]}`

	restored, err := Decode([]byte(raw), current)
	require.NoError(t, err)

	require.Len(t, restored.Members, 2)
	assert.Equal(t, "Unknown", restored.Members[0].Name)
	assert.Equal(t, [4]int64{1, 0, 0, 0}, restored.Members[0].V)
	assert.Equal(t, [4]int64{}, restored.Members[0].D)
	assert.Zero(t, restored.Members[0].V2)
	assert.Equal(t, "Unknown", restored.Members[1].Name)

	assert.Equal(t, 9, restored.Settings.Days1)
	assert.Equal(t, current.Config, restored.Settings.Config)
	assert.Equal(t, domain.FilterAll, restored.Settings.Filter)

	paths := make([]string, len(restored.Issues))
	for i, is := range restored.Issues {
		paths[i] = is.Path
	}
	assert.Contains(t, paths, "members[0].name")
	assert.Contains(t, paths, "members[0].v")
	assert.Contains(t, paths, "members[0].v[1]")
	assert.Contains(t, paths, "members[0].v2")
	assert.Contains(t, paths, "members[1]")
	assert.Contains(t, paths, "days1")
}

func TestDecode_InvalidTiersKeepCurrent(t *testing.T) {
	current := domain.DefaultSettings()
	raw := `{"members": [], "config": {"tiers": {"s": 1, "a": 2, "b": 3, "c": 4, "d": 5}}}`

	restored, err := Decode([]byte(raw), current)
	require.NoError(t, err)
	assert.Equal(t, current.Config.Tiers, restored.Settings.Config.Tiers)
	assert.Contains(t, restored.Issues, Issue{Path: "config.tiers", Reason: "thresholds must strictly decrease, kept current"})
}

func TestDecode_Invalid(t *testing.T) {
	for _, raw := range []string{`not json`, `{"data": {"members": {}}}`, `{}`, `[]`} {
		_, err := Decode([]byte(raw), domain.DefaultSettings())
		assert.ErrorIs(t, err, ErrInvalidBackup, raw)
	}
}

func TestDecode_ClampsMemberCounters(t *testing.T) {
	raw := `{"members":[{"name":"Big","v":[1e12,2.9,0,1],"d":[0,0,0,0],"v2":3}]}`

	restored, err := Decode([]byte(raw), domain.DefaultSettings())
	require.NoError(t, err)
	require.Len(t, restored.Members, 1)

	m := restored.Members[0]
	assert.Equal(t, [4]int64{domain.MaxValue, 2, 0, 1}, m.V)
	assert.Equal(t, int64(3), m.V2)

	var memberIssues []Issue
	for _, issue := range restored.Issues {
		if strings.HasPrefix(issue.Path, "members[0]") {
			memberIssues = append(memberIssues, issue)
		}
	}
	require.Len(t, memberIssues, 1)
	assert.Equal(t, "members[0].v[0]", memberIssues[0].Path)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	s := domain.DefaultSettings()
	s.Mode = domain.ModeDamage
	s.DeadBosses.Shadow[2] = true
	members := []domain.Member{
		{ID: "abc", Name: "Alice", V: [4]int64{1, 2, 3, 4}, V2: 2, D: [4]int64{5, 6, 7, 8}, Avatar: "a.png"},
	}

	raw, err := Encode(members, s, time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"generatedAt": "2026-10-16T00:00:00Z"`)
	assert.NotContains(t, string(raw), `"id"`)

	restored, err := Decode(raw, domain.DefaultSettings())
	require.NoError(t, err)
	assert.Empty(t, restored.Issues)

	members[0].ID = ""
	assert.Equal(t, members, restored.Members)
	assert.Equal(t, s.DeadBosses, restored.Settings.DeadBosses)
	assert.Equal(t, s.Mode, restored.Settings.Mode)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "bossguild-backup-2026-10-16.json", Filename(time.Date(2026, 10, 16, 23, 0, 0, 0, time.UTC)))
}
