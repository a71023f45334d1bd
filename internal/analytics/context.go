// Package analytics derives per-member statistics, tiers and guild-wide
// aggregates from a roster. Every function here is pure.
package analytics

import (
	"math"

	"guild-tracker/internal/domain"
)

const (
	// RiskThreshold is the completion percentage below which a member is flagged.
	RiskThreshold    = 80.0
	PerfectThreshold = 100.0
)

// Context selects which counters and which day budget the calculations use.
type Context struct {
	Page  domain.Page
	Mode  domain.Mode
	Days  int
	Tiers domain.TierThresholds
	Dead  domain.DeadBosses
}

func NewContext(s domain.Settings) Context {
	return Context{
		Page:  s.Page,
		Mode:  s.Mode,
		Days:  s.DaysFor(s.Page),
		Tiers: s.Config.Tiers,
		Dead:  s.DeadBosses,
	}
}

func (c Context) shadow() bool {
	return c.Page != domain.PageDestruction
}

// counters returns the per-boss counters that are authoritative under mode.
func counters(m domain.Member, mode domain.Mode) [domain.ShadowBossCount]int64 {
	if mode == domain.ModeDamage {
		return m.D
	}
	return m.V
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
