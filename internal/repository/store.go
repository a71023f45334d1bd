package repository

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"guild-tracker/internal/db"
	"guild-tracker/internal/domain"

	"github.com/rs/zerolog"
)

// State is the full tracker state read and written by Store.Update.
type State struct {
	Roster   []domain.Member
	Settings domain.Settings

	snapshots    [][]domain.Member
	clearHistory bool
}

// Snapshot queues a copy of the current roster for the weekly history.
func (s *State) Snapshot() {
	s.snapshots = append(s.snapshots, slices.Clone(s.Roster))
}

// ClearHistory drops every stored snapshot when the update commits.
func (s *State) ClearHistory() {
	s.clearHistory = true
	s.snapshots = nil
}

// Store groups the repositories and runs read-modify-write updates inside a
// single transaction. The sqlite DSN uses immediate transactions, so two
// concurrent updates never interleave.
type Store struct {
	Members  *MemberRepository
	Settings *SettingsRepository
	History  *HistoryRepository

	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewStore(
	sqlDB *sql.DB,
	queries *db.Queries,
	members *MemberRepository,
	settings *SettingsRepository,
	history *HistoryRepository,
	logger zerolog.Logger,
) *Store {
	return &Store{
		Members:  members,
		Settings: settings,
		History:  history,
		queries:  queries,
		db:       sqlDB,
		logger:   logger,
	}
}

// Load reads the roster and settings outside a transaction.
func (s *Store) Load(ctx context.Context) (State, error) {
	return s.load(ctx, s.queries)
}

// Update loads the state, applies fn and writes the result back. Returning an
// error from fn rolls everything back.
func (s *Store) Update(ctx context.Context, fn func(*State) error) (State, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return State{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)

	st, err := s.load(ctx, qtx)
	if err != nil {
		return State{}, err
	}

	if err := fn(&st); err != nil {
		return State{}, err
	}

	if st.clearHistory {
		if err := qtx.DeleteAllHistory(ctx); err != nil {
			return State{}, fmt.Errorf("failed to clear history: %w", err)
		}
	}
	for _, snap := range st.snapshots {
		id, err := s.History.append(ctx, qtx, snap)
		if err != nil {
			return State{}, err
		}
		s.logger.Info().Str("snapshot_id", id).Int("members", len(snap)).Msg("history snapshot stored")
	}

	if err := s.Members.replaceAll(ctx, qtx, st.Roster); err != nil {
		return State{}, err
	}
	if err := s.Settings.save(ctx, qtx, st.Settings); err != nil {
		return State{}, err
	}

	if err := tx.Commit(); err != nil {
		return State{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	st.snapshots = nil
	st.clearHistory = false
	return st, nil
}

func (s *Store) load(ctx context.Context, q *db.Queries) (State, error) {
	roster, err := s.Members.list(ctx, q)
	if err != nil {
		return State{}, err
	}
	settings, err := s.Settings.get(ctx, q)
	if err != nil {
		return State{}, err
	}
	return State{Roster: roster, Settings: settings}, nil
}
