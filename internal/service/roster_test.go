package service

import (
	"context"
	"testing"

	"guild-tracker/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRosterService_AddMembers(t *testing.T) {
	svc := NewRosterService(newTestStore(t), zerolog.Nop())
	ctx := context.Background()

	added, err := svc.AddMembers(ctx, []string{"  Alice ", "", "   ", "Bob"})
	require.NoError(t, err)
	require.Len(t, added, 2)
	assert.Equal(t, "Alice", added[0].Name)
	assert.Equal(t, "Bob", added[1].Name)
	assert.NotEmpty(t, added[0].ID)
	assert.Equal(t, [4]int64{}, added[0].V)

	more, err := svc.AddMember(ctx, "Carol")
	require.NoError(t, err)
	assert.Equal(t, "Carol", more.Name)

	roster, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, roster, 3)
	assert.Equal(t, "Carol", roster[2].Name)

	_, err = svc.AddMember(ctx, "   ")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSplitNames(t *testing.T) {
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, SplitNames("Alice\r\n\n  Bob \nCarol"))
	assert.Nil(t, SplitNames("\n \n"))
}

func TestRosterService_DeleteAndRename(t *testing.T) {
	store := newTestStore(t)
	svc := NewRosterService(store, zerolog.Nop())
	ctx := context.Background()
	roster := seedRoster(t, store, domain.NewMember("Alice"), domain.NewMember("Bob"))

	renamed, err := svc.RenameMember(ctx, roster[1].ID, "  Bobby ")
	require.NoError(t, err)
	assert.Equal(t, "Bobby", renamed.Name)

	_, err = svc.RenameMember(ctx, roster[1].ID, "")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	profile, err := svc.UpdateProfile(ctx, roster[0].ID, "healer", "https://example.com/a.png")
	require.NoError(t, err)
	assert.Equal(t, "healer", profile.Note)
	assert.Equal(t, "https://example.com/a.png", profile.Avatar)

	require.NoError(t, svc.DeleteMember(ctx, roster[0].ID))
	assert.ErrorIs(t, svc.DeleteMember(ctx, roster[0].ID), ErrMemberNotFound)

	left, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "Bobby", left[0].Name)
}

func TestRosterService_UpdateMemberValue(t *testing.T) {
	store := newTestStore(t)
	svc := NewRosterService(store, zerolog.Nop())
	settings := NewSettingsService(store, zerolog.Nop())
	ctx := context.Background()
	id := seedRoster(t, store, domain.NewMember("Alice"))[0].ID

	m, err := svc.UpdateMemberValue(ctx, id, 1, "3")
	require.NoError(t, err)
	assert.Equal(t, [4]int64{0, 3, 0, 0}, m.V)

	m, err = svc.UpdateMemberValue(ctx, id, 0, "-12abc")
	require.NoError(t, err)
	assert.Equal(t, int64(12), m.V[0])

	m, err = svc.UpdateMemberValue(ctx, id, domain.DestructionBossIndex, "7")
	require.NoError(t, err)
	assert.Equal(t, int64(7), m.V2)

	_, err = settings.SetMode(ctx, domain.ModeDamage)
	require.NoError(t, err)
	m, err = svc.UpdateMemberValue(ctx, id, 2, "1,234,567")
	require.NoError(t, err)
	assert.Equal(t, [4]int64{0, 0, 1_234_567, 0}, m.D)
	assert.Equal(t, [4]int64{12, 3, 0, 0}, m.V)

	_, err = settings.SetPage(ctx, domain.PageDestruction)
	require.NoError(t, err)
	m, err = svc.UpdateMemberValue(ctx, id, 3, "99999999999")
	require.NoError(t, err)
	assert.Equal(t, domain.MaxValue, m.V2)
	assert.Equal(t, int64(0), m.D[3])

	_, err = svc.UpdateMemberValue(ctx, id, 4, "1")
	assert.ErrorIs(t, err, ErrInvalidBossIndex)
	_, err = svc.UpdateMemberValue(ctx, "missing", 0, "1")
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestRosterService_ResetWeek(t *testing.T) {
	store := newTestStore(t)
	svc := NewRosterService(store, zerolog.Nop())
	settings := NewSettingsService(store, zerolog.Nop())
	ctx := context.Background()

	seeded := memberWith("Alice", [4]int64{1, 2, 3, 4})
	seeded.V2 = 5
	seeded.D = [4]int64{10, 20, 30, 40}
	seedRoster(t, store, seeded)

	_, err := settings.ToggleDeadBoss(ctx, domain.PageShadow, 1)
	require.NoError(t, err)

	require.NoError(t, svc.ResetWeek(ctx))

	roster, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, [4]int64{}, roster[0].V)
	assert.Equal(t, [4]int64{}, roster[0].D)
	assert.Zero(t, roster[0].V2)
	assert.Equal(t, "Alice", roster[0].Name)

	current, err := settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DeadBosses{}, current.DeadBosses)

	history, err := svc.ListHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, [4]int64{1, 2, 3, 4}, history[0].Members[0].V)
	assert.Equal(t, int64(5), history[0].Members[0].V2)
}

func TestRosterService_SortMembers(t *testing.T) {
	store := newTestStore(t)
	svc := NewRosterService(store, zerolog.Nop())
	ctx := context.Background()
	seedRoster(t, store,
		memberWith("bob", [4]int64{1, 0, 0, 0}),
		memberWith("Alice", [4]int64{4, 4, 4, 4}),
		memberWith("carol", [4]int64{2, 2, 0, 0}),
	)

	names := func(ms []domain.Member) []string {
		out := make([]string, len(ms))
		for i, m := range ms {
			out[i] = m.Name
		}
		return out
	}

	sorted, err := svc.SortMembers(ctx, domain.SortTotal, -1, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "carol", "bob"}, names(sorted))

	sorted, err = svc.SortMembers(ctx, domain.SortTotal, -1, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "carol", "Alice"}, names(sorted))

	sorted, err = svc.SortMembers(ctx, domain.SortName, -1, domain.SortDesc)
	require.NoError(t, err)
	assert.Equal(t, []string{"carol", "bob", "Alice"}, names(sorted))

	stored, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, names(sorted), names(stored))

	current, err := store.Settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SortState{Key: domain.SortName, Order: domain.SortDesc, Index: -1}, current.Sort)

	_, err = svc.SortMembers(ctx, "rank", -1, "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
