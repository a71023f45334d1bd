package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"guild-tracker/internal/analytics"
	"guild-tracker/internal/domain"
)

var ErrInvalidBackup = errors.New("invalid backup format")

const unknownName = "Unknown"

// Issue records one field that was defaulted or corrected while decoding.
type Issue struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

func (i Issue) String() string {
	return i.Path + ": " + i.Reason
}

type Restored struct {
	Members  []domain.Member
	Settings domain.Settings
	Issues   []Issue
}

// Decode validates an untrusted backup. Only a missing or malformed member
// list is fatal; every other field falls back to a default (or to the
// matching value in current) and the fallback is reported as an Issue.
func Decode(raw []byte, current domain.Settings) (*Restored, error) {
	var root map[string]any
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}

	data := root
	if inner, ok := root["data"].(map[string]any); ok {
		data = inner
	}

	rawMembers, ok := data["members"].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: members must be an array", ErrInvalidBackup)
	}

	d := &decoder{}
	restored := &Restored{
		Members:  make([]domain.Member, 0, len(rawMembers)),
		Settings: current,
	}

	for i, rm := range rawMembers {
		restored.Members = append(restored.Members, d.member(rm, fmt.Sprintf("members[%d]", i)))
	}

	s := &restored.Settings
	s.Config = d.config(data["config"], current.Config)
	s.Days1 = d.days(data, "days1", current.Days1)
	s.Days2 = d.days(data, "days2", current.Days2)
	s.DeadBosses = d.deadBosses(data["deadBosses"], current.DeadBosses)

	if lang := domain.Language(str(data["language"])); lang.Valid() {
		s.Language = lang
	} else {
		d.issue("language", "unsupported value, kept current")
	}
	if mode := domain.Mode(str(data["mode"])); mode.Valid() {
		s.Mode = mode
	} else {
		d.issue("mode", "unsupported value, kept current")
	}
	s.Filter = domain.FilterAll
	if str(data["filter"]) == string(domain.FilterRisk) {
		s.Filter = domain.FilterRisk
	}

	restored.Issues = d.issues
	return restored, nil
}

type decoder struct {
	issues []Issue
}

func (d *decoder) issue(path, reason string) {
	d.issues = append(d.issues, Issue{Path: path, Reason: reason})
}

func (d *decoder) member(raw any, path string) domain.Member {
	obj, ok := raw.(map[string]any)
	if !ok {
		d.issue(path, "not an object, replaced with an empty member")
		return domain.NewMember(unknownName)
	}

	m := domain.Member{Name: unknownName}
	if name, ok := obj["name"].(string); ok && strings.TrimSpace(name) != "" {
		m.Name = name
	} else {
		d.issue(path+".name", "missing or empty, using "+unknownName)
	}

	m.V = d.counters(obj["v"], path+".v")
	m.D = d.counters(obj["d"], path+".d")
	m.V2 = d.counter(obj["v2"], path+".v2")

	if note, ok := obj["note"].(string); ok {
		m.Note = note
	}
	if avatar, ok := obj["avatar"].(string); ok {
		m.Avatar = avatar
	}
	return m
}

func (d *decoder) counters(raw any, path string) [domain.ShadowBossCount]int64 {
	var out [domain.ShadowBossCount]int64

	arr, ok := raw.([]any)
	if !ok {
		d.issue(path, "missing, using zeros")
		return out
	}
	if len(arr) != domain.ShadowBossCount {
		d.issue(path, fmt.Sprintf("expected %d values, got %d", domain.ShadowBossCount, len(arr)))
	}
	for i := range out {
		if i < len(arr) {
			out[i] = d.counter(arr[i], fmt.Sprintf("%s[%d]", path, i))
		}
	}
	return out
}

func (d *decoder) counter(raw any, path string) int64 {
	f, ok := raw.(float64)
	if !ok {
		d.issue(path, "not a number, using 0")
		return 0
	}
	n, clamped := clampFloat(f)
	if clamped {
		d.issue(path, "out of range, clamped")
	}
	return n
}

func (d *decoder) days(data map[string]any, key string, current int) int {
	f, ok := data[key].(float64)
	if !ok || f < 0 {
		d.issue(key, "missing or invalid, kept current")
		return current
	}
	return int(math.Min(f, math.MaxInt32))
}

func (d *decoder) config(raw any, current domain.TrackerConfig) domain.TrackerConfig {
	cfg := current

	obj, ok := raw.(map[string]any)
	if !ok {
		d.issue("config", "missing, kept current")
		return cfg
	}

	if hp, ok := obj["bossMaxHp"].(float64); ok && hp > 0 {
		cfg.BossMaxHP = int64(hp)
	}
	if kw, ok := obj["ocrKeywords"].(string); ok {
		cfg.OCRKeywords = kw
	}

	tiersObj, _ := obj["tiers"].(map[string]any)
	tier := func(key string, fallback int64) int64 {
		if f, ok := tiersObj[key].(float64); ok {
			return int64(f)
		}
		d.issue("config.tiers."+key, "missing, kept current")
		return fallback
	}
	tiers := domain.TierThresholds{
		S: tier("s", current.Tiers.S),
		A: tier("a", current.Tiers.A),
		B: tier("b", current.Tiers.B),
		C: tier("c", current.Tiers.C),
		D: tier("d", current.Tiers.D),
	}
	if err := tiers.Validate(); err != nil {
		d.issue("config.tiers", "thresholds must strictly decrease, kept current")
		tiers = current.Tiers
	}
	cfg.Tiers = tiers

	return cfg
}

func (d *decoder) deadBosses(raw any, current domain.DeadBosses) domain.DeadBosses {
	obj, ok := raw.(map[string]any)
	if !ok {
		d.issue("deadBosses", "missing, kept current")
		return current
	}

	out := current
	if arr, ok := obj["1"].([]any); ok {
		out.Shadow = [domain.ShadowBossCount]bool{}
		for i := 0; i < len(arr) && i < domain.ShadowBossCount; i++ {
			out.Shadow[i] = truthy(arr[i])
		}
	}
	if arr, ok := obj["2"].([]any); ok {
		out.Destruction = [1]bool{}
		if len(arr) > 0 {
			out.Destruction[0] = truthy(arr[0])
		}
	}
	return out
}

func clampFloat(f float64) (int64, bool) {
	switch {
	case math.IsNaN(f) || f < 0:
		return 0, true
	case f > float64(domain.MaxValue):
		return domain.MaxValue, true
	}
	return analytics.Clamp(int64(f)), false
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case string:
		return t != ""
	}
	return true
}
