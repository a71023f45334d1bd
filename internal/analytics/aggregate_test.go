package analytics

import (
	"testing"

	"guild-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestComputeAnalytics_ShadowCount(t *testing.T) {
	roster := []domain.Member{
		{Name: "a", V: [4]int64{10, 10, 10, 10}},
		{Name: "b", V: [4]int64{5, 0, 5, 0}},
	}
	ctx := shadowCtx(domain.ModeCount, 10)

	a := ComputeAnalytics(roster, ctx)

	assert.Equal(t, int64(80), a.TotalPossible)
	assert.Equal(t, int64(50), a.GrandTotal)
	assert.Equal(t, 62.5, a.Percent)
	assert.Equal(t, int64(30), a.MissingCount)
	assert.Equal(t, int64(30), a.MissingForGoal)
	assert.Equal(t, 25.0, a.DailyAvg)
	assert.Equal(t, []int64{15, 10, 15, 10}, a.PerBossTotals)
}

func TestComputeAnalytics_DeadBosses(t *testing.T) {
	roster := []domain.Member{
		{V: [4]int64{3, 3, 3, 3}},
		{V: [4]int64{3, 3, 3, 3}},
	}
	ctx := shadowCtx(domain.ModeCount, 5)
	ctx.Dead.Shadow = [4]bool{true, false, true, false}

	a := ComputeAnalytics(roster, ctx)

	assert.Equal(t, int64(20), a.TotalPossible)
	assert.Equal(t, int64(24), a.GrandTotal)
	assert.Equal(t, 120.0, a.Percent)
	assert.Zero(t, a.MissingCount)
	// the goal ignores dead bosses
	assert.Equal(t, int64(16), a.MissingForGoal)
}

func TestComputeAnalytics_AllShadowBossesDead(t *testing.T) {
	roster := make([]domain.Member, 30)
	ctx := shadowCtx(domain.ModeCount, 99)
	ctx.Dead.Shadow = [4]bool{true, true, true, true}

	a := ComputeAnalytics(roster, ctx)

	assert.Zero(t, a.TotalPossible)
	assert.Zero(t, a.Percent)
}

func TestComputeAnalytics_DamageMode(t *testing.T) {
	roster := []domain.Member{
		{V: [4]int64{9, 9, 9, 9}, D: [4]int64{100, 200, 300, 400}},
		{D: [4]int64{1, 2, 3, 4}},
	}

	a := ComputeAnalytics(roster, shadowCtx(domain.ModeDamage, 1))

	assert.Equal(t, int64(1010), a.GrandTotal)
	assert.Equal(t, []int64{101, 202, 303, 404}, a.PerBossTotals)
}

func TestComputeAnalytics_Destruction(t *testing.T) {
	roster := []domain.Member{{V2: 4}, {V2: 6}, {V2: 0}}
	ctx := Context{Page: domain.PageDestruction, Mode: domain.ModeCount, Days: 5}

	a := ComputeAnalytics(roster, ctx)
	assert.Equal(t, int64(15), a.TotalPossible)
	assert.Equal(t, int64(10), a.GrandTotal)
	assert.Equal(t, 66.7, a.Percent)
	assert.Equal(t, []int64{10}, a.PerBossTotals)
	assert.Equal(t, 3.3, a.DailyAvg)

	ctx.Dead.Destruction[0] = true
	a = ComputeAnalytics(roster, ctx)
	assert.Zero(t, a.TotalPossible)
	assert.Zero(t, a.Percent)
	assert.Equal(t, int64(5), a.MissingForGoal)
}

func TestComputeAnalytics_EmptyRoster(t *testing.T) {
	a := ComputeAnalytics(nil, shadowCtx(domain.ModeCount, 11))

	assert.Zero(t, a.TotalPossible)
	assert.Zero(t, a.GrandTotal)
	assert.Zero(t, a.Percent)
	assert.Zero(t, a.DailyAvg)
	assert.Equal(t, []int64{0, 0, 0, 0}, a.PerBossTotals)
}

func TestBossHealth(t *testing.T) {
	roster := []domain.Member{
		{D: [4]int64{60_000_000, 10, 0, 0}},
		{D: [4]int64{60_000_000, 0, 0, 0}},
	}
	dead := domain.DeadBosses{Shadow: [4]bool{true, false, false, false}}

	hp := BossHealth(roster, 0, dead)

	assert.Len(t, hp, domain.ShadowBossCount)
	assert.Equal(t, "Teo", hp[0].Name)
	assert.Equal(t, int64(120_000_000), hp[0].Damage)
	assert.Equal(t, 100.0, hp[0].Percent)
	assert.True(t, hp[0].Dead)
	assert.Equal(t, 0.0, hp[1].Percent)
	assert.False(t, hp[1].Dead)
}
