package service

import (
	"context"
	"path/filepath"
	"testing"

	"guild-tracker/internal/config"
	"guild-tracker/internal/database"
	"guild-tracker/internal/db"
	"guild-tracker/internal/domain"
	"guild-tracker/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *repository.Store {
	t.Helper()

	logger := zerolog.Nop()
	sqlDB, err := database.Open(filepath.Join(t.TempDir(), "guild.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	queries := db.New(sqlDB)
	cfg := &config.Config{Defaults: domain.DefaultSettings()}

	return repository.NewStore(
		sqlDB,
		queries,
		repository.NewMemberRepository(sqlDB, queries, logger),
		repository.NewSettingsRepository(queries, cfg, logger),
		repository.NewHistoryRepository(queries, logger),
		logger,
	)
}

// seedRoster stores members in the given order and returns them with ids.
func seedRoster(t *testing.T, store *repository.Store, members ...domain.Member) []domain.Member {
	t.Helper()

	st, err := store.Update(context.Background(), func(st *repository.State) error {
		st.Roster = append(st.Roster, members...)
		return nil
	})
	require.NoError(t, err)
	return st.Roster
}

func memberWith(name string, v [4]int64) domain.Member {
	m := domain.NewMember(name)
	m.V = v
	return m
}
