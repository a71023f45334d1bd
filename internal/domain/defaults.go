package domain

const (
	DefaultDays      = 11
	DefaultBossMaxHP = 100_000_000
	DefaultKeywords  = "โจมตี, ครั้ง, ครั้ง, ที, อัปเดต, Attack, Times"
)

func DefaultTiers() TierThresholds {
	return TierThresholds{
		S: 1_500_000,
		A: 1_200_000,
		B: 1_000_000,
		C: 800_000,
		D: 500_000,
	}
}

func DefaultSettings() Settings {
	return Settings{
		Page:     PageShadow,
		Days1:    DefaultDays,
		Days2:    DefaultDays,
		Mode:     ModeCount,
		Filter:   FilterAll,
		Language: LanguageTH,
		Config: TrackerConfig{
			BossMaxHP:   DefaultBossMaxHP,
			OCRKeywords: DefaultKeywords,
			Tiers:       DefaultTiers(),
		},
		Sort: SortState{Order: SortDesc, Index: -1},
	}
}

// NewMember returns a roster entry with all counters at zero.
func NewMember(name string) Member {
	return Member{Name: name}
}
