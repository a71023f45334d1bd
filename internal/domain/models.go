package domain

import (
	"time"
)

const (
	// ShadowBossCount is the number of bosses on the shadow page.
	ShadowBossCount = 4

	// DestructionBossIndex targets the single destruction boss in per-boss operations.
	DestructionBossIndex = -1

	MaxValue int64 = 999_999_999
)

var ShadowBossNames = [ShadowBossCount]string{"Teo", "Kyle", "Yeonhee", "Karma"}

const DestructionBossName = "God of Destruction"

type Page int

const (
	PageShadow      Page = 1
	PageDestruction Page = 2
)

func (p Page) Valid() bool {
	return p == PageShadow || p == PageDestruction
}

// ExpectedPerDay is the number of attempt slots a member has per day on the page.
func (p Page) ExpectedPerDay() int {
	if p == PageDestruction {
		return 1
	}
	return ShadowBossCount
}

type Mode string

const (
	ModeCount  Mode = "count"
	ModeDamage Mode = "damage"
)

func (m Mode) Valid() bool {
	return m == ModeCount || m == ModeDamage
}

type Filter string

const (
	FilterAll  Filter = "all"
	FilterRisk Filter = "risk"
)

type Language string

const (
	LanguageTH Language = "th"
	LanguageEN Language = "en"
)

func (l Language) Valid() bool {
	return l == LanguageTH || l == LanguageEN
}

type Member struct {
	ID     string                 `json:"id,omitempty"`
	Name   string                 `json:"name"`
	V      [ShadowBossCount]int64 `json:"v"`  // attempts per shadow boss
	V2     int64                  `json:"v2"` // attempts on the destruction boss
	D      [ShadowBossCount]int64 `json:"d"`  // damage per shadow boss
	Note   string                 `json:"note,omitempty"`
	Avatar string                 `json:"avatar,omitempty"`
}

// ResetCounters zeroes every attempt and damage counter.
func (m *Member) ResetCounters() {
	m.V = [ShadowBossCount]int64{}
	m.D = [ShadowBossCount]int64{}
	m.V2 = 0
}

type DeadBosses struct {
	Shadow      [ShadowBossCount]bool `json:"1"`
	Destruction [1]bool               `json:"2"`
}

// For returns the dead flags of the bosses on page p.
func (d DeadBosses) For(p Page) []bool {
	if p == PageDestruction {
		return d.Destruction[:]
	}
	return d.Shadow[:]
}

// Toggle flips the dead flag of boss i on page p. Out of range indexes are ignored.
func (d *DeadBosses) Toggle(p Page, i int) {
	flags := d.Shadow[:]
	if p == PageDestruction {
		flags = d.Destruction[:]
	}
	if i >= 0 && i < len(flags) {
		flags[i] = !flags[i]
	}
}

type TierThresholds struct {
	S int64 `json:"s" yaml:"s" validate:"gtfield=A"`
	A int64 `json:"a" yaml:"a" validate:"gtfield=B"`
	B int64 `json:"b" yaml:"b" validate:"gtfield=C"`
	C int64 `json:"c" yaml:"c" validate:"gtfield=D"`
	D int64 `json:"d" yaml:"d" validate:"gte=0"`
}

type TrackerConfig struct {
	BossMaxHP   int64          `json:"bossMaxHp" validate:"gt=0"`
	OCRKeywords string         `json:"ocrKeywords"`
	Tiers       TierThresholds `json:"tiers"`
}

type SortKey string

const (
	SortNone  SortKey = ""
	SortName  SortKey = "name"
	SortTotal SortKey = "total"
	SortBoss  SortKey = "boss"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

type SortState struct {
	Key   SortKey   `json:"key"`
	Order SortOrder `json:"order"`
	Index int       `json:"index"`
}

type Settings struct {
	Page       Page          `json:"page"`
	Days1      int           `json:"days1"`
	Days2      int           `json:"days2"`
	Mode       Mode          `json:"mode"`
	Filter     Filter        `json:"filter"`
	Language   Language      `json:"language"`
	DeadBosses DeadBosses    `json:"deadBosses"`
	Config     TrackerConfig `json:"config"`
	Sort       SortState     `json:"sort"`
}

// DaysFor returns the configured day budget for page p.
func (s Settings) DaysFor(p Page) int {
	if p == PageDestruction {
		return s.Days2
	}
	return s.Days1
}

type HistorySnapshot struct {
	ID        string    `json:"id"`
	Members   []Member  `json:"members"`
	CreatedAt time.Time `json:"createdAt"`
}

type NameSource string

const (
	NameFromPreviousLine NameSource = "previous_line"
	NameFromSecondLine   NameSource = "second_line"
	NameSynthetic        NameSource = "synthetic"
)

type OCREntry struct {
	Name       string     `json:"name"`
	Damage     int64      `json:"damage"`
	Plays      *int64     `json:"plays,omitempty"`
	Line       int        `json:"line"`
	NameSource NameSource `json:"nameSource,omitempty"`
}

// Ambiguous reports whether the entry's name was not read from the line right above its score.
func (e OCREntry) Ambiguous() bool {
	return e.NameSource != "" && e.NameSource != NameFromPreviousLine
}

type MemberStats struct {
	Total      int64   `json:"total"`
	Avg        float64 `json:"avg"`
	Completion float64 `json:"completion"`
	IsRisk     bool    `json:"isRisk"`
	IsPerfect  bool    `json:"isPerfect"`
}

type Tier struct {
	Label string `json:"label"`
	Class string `json:"class"`
}

type Analytics struct {
	TotalPossible  int64   `json:"totalPossible"`
	GrandTotal     int64   `json:"grandTotal"`
	Percent        float64 `json:"percent"`
	MissingCount   int64   `json:"missingCount"`
	MissingForGoal int64   `json:"missingForGoal"`
	DailyAvg       float64 `json:"dailyAvg"`
	PerBossTotals  []int64 `json:"perBossTotals"`
}

type BossHP struct {
	Name    string  `json:"name"`
	Damage  int64   `json:"damage"`
	Percent float64 `json:"percent"`
	Dead    bool    `json:"dead"`
}

type NameSuggestion struct {
	Name      string `json:"name"`
	Candidate string `json:"candidate"`
	Distance  int    `json:"distance"`
}

type ReconcileReport struct {
	Updated     int              `json:"updated"`
	Unmatched   []string         `json:"unmatched"`
	Suggestions []NameSuggestion `json:"suggestions,omitempty"`
	Roster      []Member         `json:"-"`
}
