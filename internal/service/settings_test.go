package service

import (
	"context"
	"testing"

	"guild-tracker/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsService_Enums(t *testing.T) {
	svc := NewSettingsService(newTestStore(t), zerolog.Nop())
	ctx := context.Background()

	s, err := svc.SetPage(ctx, domain.PageDestruction)
	require.NoError(t, err)
	assert.Equal(t, domain.PageDestruction, s.Page)

	s, err = svc.SetFilter(ctx, domain.FilterRisk)
	require.NoError(t, err)
	assert.Equal(t, domain.FilterRisk, s.Filter)

	s, err = svc.SetLanguage(ctx, domain.LanguageEN)
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageEN, s.Language)
	assert.Equal(t, domain.PageDestruction, s.Page)

	_, err = svc.SetPage(ctx, 3)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = svc.SetMode(ctx, "speed")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = svc.SetFilter(ctx, "none")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = svc.SetLanguage(ctx, "fr")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSettingsService_UpdateView(t *testing.T) {
	svc := NewSettingsService(newTestStore(t), zerolog.Nop())
	ctx := context.Background()

	page := domain.PageDestruction
	mode := domain.ModeDamage
	lang := domain.LanguageEN
	s, err := svc.UpdateView(ctx, ViewPatch{Page: &page, Mode: &mode, Language: &lang})
	require.NoError(t, err)
	assert.Equal(t, domain.PageDestruction, s.Page)
	assert.Equal(t, domain.ModeDamage, s.Mode)
	assert.Equal(t, domain.LanguageEN, s.Language)
	assert.Equal(t, domain.FilterAll, s.Filter)
}

func TestSettingsService_UpdateViewRejectsWholePatch(t *testing.T) {
	svc := NewSettingsService(newTestStore(t), zerolog.Nop())
	ctx := context.Background()

	before, err := svc.Get(ctx)
	require.NoError(t, err)

	page := domain.PageDestruction
	filter := domain.FilterRisk
	bogus := domain.Mode("bogus")
	_, err = svc.UpdateView(ctx, ViewPatch{Page: &page, Mode: &bogus, Filter: &filter})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	after, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, before.Page, after.Page)
	assert.Equal(t, before.Mode, after.Mode)
	assert.Equal(t, before.Filter, after.Filter)
}

func TestSettingsService_UpdateDays(t *testing.T) {
	svc := NewSettingsService(newTestStore(t), zerolog.Nop())
	ctx := context.Background()

	s, err := svc.UpdateDays(ctx, 7, 0)
	require.NoError(t, err)
	assert.Equal(t, 7, s.Days1)
	assert.Equal(t, domain.DefaultDays, s.Days2)

	_, err = svc.UpdateDays(ctx, -1, 3)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSettingsService_UpdateConfig(t *testing.T) {
	svc := NewSettingsService(newTestStore(t), zerolog.Nop())
	ctx := context.Background()

	hp := int64(50_000_000)
	keywords := "Attack, Times"
	s, err := svc.UpdateConfig(ctx, ConfigPatch{BossMaxHP: &hp, OCRKeywords: &keywords})
	require.NoError(t, err)
	assert.Equal(t, hp, s.Config.BossMaxHP)
	assert.Equal(t, keywords, s.Config.OCRKeywords)
	assert.Equal(t, domain.DefaultTiers(), s.Config.Tiers)

	bad := domain.TierThresholds{S: 1, A: 2, B: 3, C: 4, D: 5}
	_, err = svc.UpdateConfig(ctx, ConfigPatch{Tiers: &bad})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	zero := int64(0)
	_, err = svc.UpdateConfig(ctx, ConfigPatch{BossMaxHP: &zero})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	current, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, hp, current.Config.BossMaxHP)
	assert.Equal(t, domain.DefaultTiers(), current.Config.Tiers)
}

func TestSettingsService_ToggleDeadBoss(t *testing.T) {
	svc := NewSettingsService(newTestStore(t), zerolog.Nop())
	ctx := context.Background()

	dead, err := svc.ToggleDeadBoss(ctx, domain.PageShadow, 3)
	require.NoError(t, err)
	assert.Equal(t, [4]bool{false, false, false, true}, dead.Shadow)

	dead, err = svc.ToggleDeadBoss(ctx, domain.PageDestruction, 0)
	require.NoError(t, err)
	assert.True(t, dead.Destruction[0])

	dead, err = svc.ToggleDeadBoss(ctx, domain.PageShadow, 3)
	require.NoError(t, err)
	assert.Equal(t, [4]bool{}, dead.Shadow)
	assert.True(t, dead.Destruction[0])

	_, err = svc.ToggleDeadBoss(ctx, domain.PageDestruction, 1)
	assert.ErrorIs(t, err, ErrInvalidBossIndex)
	_, err = svc.ToggleDeadBoss(ctx, domain.PageShadow, 4)
	assert.ErrorIs(t, err, ErrInvalidBossIndex)
}

func TestSettingsService_FactoryReset(t *testing.T) {
	store := newTestStore(t)
	svc := NewSettingsService(store, zerolog.Nop())
	roster := NewRosterService(store, zerolog.Nop())
	ctx := context.Background()

	seedRoster(t, store, domain.NewMember("Alice"))
	require.NoError(t, roster.ResetWeek(ctx))
	_, err := svc.SetMode(ctx, domain.ModeDamage)
	require.NoError(t, err)

	s, err := svc.FactoryReset(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), s)

	members, err := roster.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, members)

	history, err := roster.ListHistory(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)
}
