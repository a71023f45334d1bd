package analytics

import "guild-tracker/internal/domain"

// TotalPossible is the attempt budget of the roster on the active page.
// Dead bosses contribute nothing.
func TotalPossible(rosterSize int, ctx Context) int64 {
	perBoss := max(0, int64(ctx.Days)*int64(rosterSize))

	var total int64
	for _, dead := range ctx.Dead.For(ctx.Page) {
		if !dead {
			total += perBoss
		}
	}
	return total
}

// ComputeAnalytics rolls the whole roster up. MissingForGoal is measured
// against the full expected total and ignores dead bosses, unlike
// TotalPossible and MissingCount.
func ComputeAnalytics(roster []domain.Member, ctx Context) domain.Analytics {
	a := domain.Analytics{
		TotalPossible: TotalPossible(len(roster), ctx),
	}

	var perBoss []int64
	if ctx.shadow() {
		perBoss = make([]int64, domain.ShadowBossCount)
	}

	for _, m := range roster {
		a.GrandTotal += Total(m, ctx)
		if ctx.shadow() {
			for i, v := range counters(m, ctx.Mode) {
				perBoss[i] += v
			}
		}
	}

	if ctx.shadow() {
		a.PerBossTotals = perBoss
	} else {
		a.PerBossTotals = []int64{a.GrandTotal}
	}

	if a.TotalPossible > 0 {
		a.Percent = round1(float64(a.GrandTotal) / float64(a.TotalPossible) * 100)
	}
	a.MissingCount = max(0, a.TotalPossible-a.GrandTotal)

	expectedTotal := int64(ctx.Days) * int64(ctx.Page.ExpectedPerDay()) * int64(len(roster))
	a.MissingForGoal = max(0, expectedTotal-a.GrandTotal)

	if len(roster) > 0 {
		a.DailyAvg = round1(float64(a.GrandTotal) / float64(len(roster)))
	}
	return a
}

// BossHealth reports the damage dealt to each shadow boss against maxHP.
func BossHealth(roster []domain.Member, maxHP int64, dead domain.DeadBosses) []domain.BossHP {
	if maxHP <= 0 {
		maxHP = domain.DefaultBossMaxHP
	}

	var damage [domain.ShadowBossCount]int64
	for _, m := range roster {
		for i, d := range m.D {
			damage[i] += d
		}
	}

	out := make([]domain.BossHP, domain.ShadowBossCount)
	for i, name := range domain.ShadowBossNames {
		out[i] = domain.BossHP{
			Name:    name,
			Damage:  damage[i],
			Percent: round1(min(100, float64(damage[i])/float64(maxHP)*100)),
			Dead:    dead.Shadow[i],
		}
	}
	return out
}
