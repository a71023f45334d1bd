package analytics

import "guild-tracker/internal/domain"

var (
	TierNone = domain.Tier{Label: "-", Class: "tier-none"}
	TierS    = domain.Tier{Label: "S", Class: "tier-s"}
	TierA    = domain.Tier{Label: "A", Class: "tier-a"}
	TierB    = domain.Tier{Label: "B", Class: "tier-b"}
	TierC    = domain.Tier{Label: "C", Class: "tier-c"}
	TierD    = domain.Tier{Label: "D", Class: "tier-d"}
	TierF    = domain.Tier{Label: "F", Class: "tier-f"}
)

// ClassifyTier grades a member's average damage. Tiers only exist for
// damage tracking on the shadow page; everything else is TierNone.
func ClassifyTier(m domain.Member, ctx Context) domain.Tier {
	if !ctx.shadow() || ctx.Mode == domain.ModeCount {
		return TierNone
	}
	return TierFor(ComputeStats(m, ctx).Avg, ctx.Tiers)
}

// TierFor maps avg onto the thresholds. A value equal to a threshold
// belongs to that threshold's tier.
func TierFor(avg float64, t domain.TierThresholds) domain.Tier {
	ladder := []struct {
		min  int64
		tier domain.Tier
	}{
		{t.S, TierS},
		{t.A, TierA},
		{t.B, TierB},
		{t.C, TierC},
		{t.D, TierD},
	}
	for _, step := range ladder {
		if avg >= float64(step.min) {
			return step.tier
		}
	}
	return TierF
}
