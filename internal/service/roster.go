package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"guild-tracker/internal/analytics"
	"guild-tracker/internal/constants"
	"guild-tracker/internal/domain"
	"guild-tracker/internal/repository"

	"github.com/rs/zerolog"
)

// RosterService owns every change to the member list.
type RosterService struct {
	store  *repository.Store
	logger zerolog.Logger
}

func NewRosterService(store *repository.Store, logger zerolog.Logger) *RosterService {
	return &RosterService{store: store, logger: logger}
}

func (s *RosterService) List(ctx context.Context) ([]domain.Member, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.store.Members.List(ctx)
}

func (s *RosterService) AddMember(ctx context.Context, name string) (domain.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Member{}, fmt.Errorf("%w: member name is empty", ErrInvalidArgument)
	}

	added, err := s.AddMembers(ctx, []string{name})
	if err != nil {
		return domain.Member{}, err
	}
	return added[0], nil
}

// AddMembers appends one member per non-blank name, in order. Names are not
// deduplicated against the roster.
func (s *RosterService) AddMembers(ctx context.Context, names []string) ([]domain.Member, error) {
	clean := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			clean = append(clean, name)
		}
	}
	if len(clean) > constants.MaxBulkNames {
		return nil, fmt.Errorf("%w: at most %d names per request", ErrInvalidArgument, constants.MaxBulkNames)
	}
	if len(clean) == 0 {
		return []domain.Member{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var first int
	st, err := s.store.Update(ctx, func(st *repository.State) error {
		first = len(st.Roster)
		for _, name := range clean {
			st.Roster = append(st.Roster, domain.NewMember(name))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add members: %w", err)
	}

	s.logger.Info().Int("count", len(clean)).Int("roster_size", len(st.Roster)).Msg("members added")
	return st.Roster[first:], nil
}

// SplitNames turns pasted text into candidate names, one per line.
func SplitNames(text string) []string {
	var names []string
	for line := range strings.Lines(text) {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func (s *RosterService) DeleteMember(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	_, err := s.store.Update(ctx, func(st *repository.State) error {
		idx := indexOf(st.Roster, id)
		if idx < 0 {
			return ErrMemberNotFound
		}
		st.Roster = slices.Delete(st.Roster, idx, idx+1)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("member_id", id).Msg("member deleted")
	return nil
}

func (s *RosterService) RenameMember(ctx context.Context, id, name string) (domain.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Member{}, fmt.Errorf("%w: member name is empty", ErrInvalidArgument)
	}

	return s.updateMember(ctx, id, func(m *domain.Member, _ domain.Settings) error {
		m.Name = name
		return nil
	})
}

func (s *RosterService) UpdateProfile(ctx context.Context, id, note, avatar string) (domain.Member, error) {
	return s.updateMember(ctx, id, func(m *domain.Member, _ domain.Settings) error {
		m.Note = note
		m.Avatar = avatar
		return nil
	})
}

// UpdateMemberValue stores a typed cell value. On the shadow page a boss
// index of 0..3 writes the damage or attempt counter selected by the mode;
// the destruction page, or index -1, writes the destruction attempts.
func (s *RosterService) UpdateMemberValue(ctx context.Context, id string, bossIndex int, raw string) (domain.Member, error) {
	if err := checkBossIndex(bossIndex); err != nil {
		return domain.Member{}, err
	}
	value := analytics.ParseNumericInput(raw)

	m, err := s.updateMember(ctx, id, func(m *domain.Member, settings domain.Settings) error {
		switch {
		case settings.Page != domain.PageDestruction && bossIndex >= 0 && settings.Mode == domain.ModeDamage:
			m.D[bossIndex] = value
		case settings.Page != domain.PageDestruction && bossIndex >= 0:
			m.V[bossIndex] = value
		default:
			m.V2 = value
		}
		return nil
	})
	if err != nil {
		return domain.Member{}, err
	}

	s.logger.Debug().Str("member_id", id).Int("boss_index", bossIndex).Int64("value", value).Msg("member value updated")
	return m, nil
}

// ResetWeek archives the roster into history, zeroes every counter and
// revives all bosses.
func (s *RosterService) ResetWeek(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	st, err := s.store.Update(ctx, func(st *repository.State) error {
		st.Snapshot()
		for i := range st.Roster {
			st.Roster[i].ResetCounters()
		}
		st.Settings.DeadBosses = domain.DeadBosses{}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to reset week: %w", err)
	}

	s.logger.Info().Int("members", len(st.Roster)).Msg("week reset")
	return nil
}

// SortMembers applies a header click and persists the resulting order. A
// non-empty order overrides the toggled direction.
func (s *RosterService) SortMembers(ctx context.Context, key domain.SortKey, index int, order domain.SortOrder) ([]domain.Member, error) {
	switch key {
	case domain.SortName, domain.SortTotal, domain.SortBoss:
	default:
		return nil, fmt.Errorf("%w: unknown sort key %q", ErrInvalidArgument, key)
	}
	if order != "" && order != domain.SortAsc && order != domain.SortDesc {
		return nil, fmt.Errorf("%w: unknown sort order %q", ErrInvalidArgument, order)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	st, err := s.store.Update(ctx, func(st *repository.State) error {
		next := analytics.NextSort(st.Settings.Sort, key, index)
		if order != "" {
			next.Order = order
		}
		st.Settings.Sort = next
		st.Roster = analytics.SortMembers(st.Roster, next, analytics.NewContext(st.Settings))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sort members: %w", err)
	}
	return st.Roster, nil
}

func (s *RosterService) ListHistory(ctx context.Context) ([]domain.HistorySnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.store.History.List(ctx, constants.HistoryListLimit)
}

func (s *RosterService) updateMember(ctx context.Context, id string, fn func(*domain.Member, domain.Settings) error) (domain.Member, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var updated domain.Member
	_, err := s.store.Update(ctx, func(st *repository.State) error {
		idx := indexOf(st.Roster, id)
		if idx < 0 {
			return ErrMemberNotFound
		}
		if err := fn(&st.Roster[idx], st.Settings); err != nil {
			return err
		}
		updated = st.Roster[idx]
		return nil
	})
	if err != nil {
		return domain.Member{}, err
	}
	return updated, nil
}

func indexOf(roster []domain.Member, id string) int {
	return slices.IndexFunc(roster, func(m domain.Member) bool {
		return m.ID == id
	})
}

func checkBossIndex(bossIndex int) error {
	if bossIndex < domain.DestructionBossIndex || bossIndex >= domain.ShadowBossCount {
		return fmt.Errorf("%w: %d", ErrInvalidBossIndex, bossIndex)
	}
	return nil
}
