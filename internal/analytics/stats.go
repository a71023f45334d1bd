package analytics

import "guild-tracker/internal/domain"

// Total is the member's figure for the active page: the sum of damage or
// attempts over the shadow bosses, or the destruction attempt count.
func Total(m domain.Member, ctx Context) int64 {
	if !ctx.shadow() {
		return m.V2
	}
	var total int64
	for _, v := range counters(m, ctx.Mode) {
		total += v
	}
	return total
}

func ComputeStats(m domain.Member, ctx Context) domain.MemberStats {
	total := Total(m, ctx)

	var avg, completion float64
	if ctx.Days > 0 {
		avg = float64(total) / float64(ctx.Days)
	}
	expectedTotal := ctx.Days * ctx.Page.ExpectedPerDay()
	if expectedTotal > 0 {
		completion = float64(total) / float64(expectedTotal) * 100
	}

	return domain.MemberStats{
		Total:      total,
		Avg:        round1(avg),
		Completion: round1(completion),
		IsRisk:     completion < RiskThreshold,
		IsPerfect:  completion >= PerfectThreshold,
	}
}
