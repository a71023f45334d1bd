package service

import (
	"context"
	"fmt"

	"guild-tracker/internal/constants"
	"guild-tracker/internal/domain"
	"guild-tracker/internal/repository"

	"github.com/rs/zerolog"
)

type SettingsService struct {
	store  *repository.Store
	logger zerolog.Logger
}

func NewSettingsService(store *repository.Store, logger zerolog.Logger) *SettingsService {
	return &SettingsService{store: store, logger: logger}
}

func (s *SettingsService) Get(ctx context.Context) (domain.Settings, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.store.Settings.Get(ctx)
}

// ConfigPatch carries a partial config update; nil fields stay unchanged.
type ConfigPatch struct {
	BossMaxHP   *int64
	OCRKeywords *string
	Tiers       *domain.TierThresholds
}

// ViewPatch carries a partial view update; nil fields stay unchanged.
type ViewPatch struct {
	Page     *domain.Page
	Mode     *domain.Mode
	Filter   *domain.Filter
	Language *domain.Language
}

func (p ViewPatch) validate() error {
	if p.Page != nil && !p.Page.Valid() {
		return fmt.Errorf("%w: unknown page %d", ErrInvalidArgument, *p.Page)
	}
	if p.Mode != nil && !p.Mode.Valid() {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidArgument, *p.Mode)
	}
	if p.Filter != nil && *p.Filter != domain.FilterAll && *p.Filter != domain.FilterRisk {
		return fmt.Errorf("%w: unknown filter %q", ErrInvalidArgument, *p.Filter)
	}
	if p.Language != nil && !p.Language.Valid() {
		return fmt.Errorf("%w: unknown language %q", ErrInvalidArgument, *p.Language)
	}
	return nil
}

// UpdateView applies every present field of patch in one transaction, or
// none of them when any field is invalid.
func (s *SettingsService) UpdateView(ctx context.Context, patch ViewPatch) (domain.Settings, error) {
	if err := patch.validate(); err != nil {
		return domain.Settings{}, err
	}
	return s.update(ctx, func(st *domain.Settings) error {
		if patch.Page != nil {
			st.Page = *patch.Page
		}
		if patch.Mode != nil {
			st.Mode = *patch.Mode
		}
		if patch.Filter != nil {
			st.Filter = *patch.Filter
		}
		if patch.Language != nil {
			st.Language = *patch.Language
		}
		return nil
	})
}

func (s *SettingsService) SetPage(ctx context.Context, page domain.Page) (domain.Settings, error) {
	return s.UpdateView(ctx, ViewPatch{Page: &page})
}

func (s *SettingsService) SetMode(ctx context.Context, mode domain.Mode) (domain.Settings, error) {
	return s.UpdateView(ctx, ViewPatch{Mode: &mode})
}

func (s *SettingsService) SetFilter(ctx context.Context, filter domain.Filter) (domain.Settings, error) {
	return s.UpdateView(ctx, ViewPatch{Filter: &filter})
}

func (s *SettingsService) SetLanguage(ctx context.Context, lang domain.Language) (domain.Settings, error) {
	return s.UpdateView(ctx, ViewPatch{Language: &lang})
}

// UpdateDays sets the day budgets. Zero keeps the stored value.
func (s *SettingsService) UpdateDays(ctx context.Context, days1, days2 int) (domain.Settings, error) {
	if days1 < 0 || days2 < 0 {
		return domain.Settings{}, fmt.Errorf("%w: days must not be negative", ErrInvalidArgument)
	}
	return s.update(ctx, func(st *domain.Settings) error {
		if days1 > 0 {
			st.Days1 = days1
		}
		if days2 > 0 {
			st.Days2 = days2
		}
		return nil
	})
}

func (s *SettingsService) UpdateConfig(ctx context.Context, patch ConfigPatch) (domain.Settings, error) {
	return s.update(ctx, func(st *domain.Settings) error {
		cfg := st.Config
		if patch.BossMaxHP != nil {
			cfg.BossMaxHP = *patch.BossMaxHP
		}
		if patch.OCRKeywords != nil {
			cfg.OCRKeywords = *patch.OCRKeywords
		}
		if patch.Tiers != nil {
			cfg.Tiers = *patch.Tiers
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		st.Config = cfg
		return nil
	})
}

// ToggleDeadBoss flips the dead flag of one boss on page.
func (s *SettingsService) ToggleDeadBoss(ctx context.Context, page domain.Page, index int) (domain.DeadBosses, error) {
	if !page.Valid() {
		return domain.DeadBosses{}, fmt.Errorf("%w: unknown page %d", ErrInvalidArgument, page)
	}
	if index < 0 || index >= page.ExpectedPerDay() {
		return domain.DeadBosses{}, fmt.Errorf("%w: %d", ErrInvalidBossIndex, index)
	}

	st, err := s.update(ctx, func(st *domain.Settings) error {
		st.DeadBosses.Toggle(page, index)
		return nil
	})
	if err != nil {
		return domain.DeadBosses{}, err
	}

	s.logger.Info().
		Int("page", int(page)).
		Int("boss_index", index).
		Bool("dead", st.DeadBosses.For(page)[index]).
		Msg("boss state toggled")
	return st.DeadBosses, nil
}

// FactoryReset removes every member, every history snapshot and restores
// the default settings.
func (s *SettingsService) FactoryReset(ctx context.Context) (domain.Settings, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	st, err := s.store.Update(ctx, func(st *repository.State) error {
		st.Roster = []domain.Member{}
		st.Settings = s.store.Settings.Defaults()
		st.ClearHistory()
		return nil
	})
	if err != nil {
		return domain.Settings{}, fmt.Errorf("failed to reset: %w", err)
	}

	s.logger.Warn().Msg("factory reset completed")
	return st.Settings, nil
}

func (s *SettingsService) update(ctx context.Context, fn func(*domain.Settings) error) (domain.Settings, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	st, err := s.store.Update(ctx, func(st *repository.State) error {
		return fn(&st.Settings)
	})
	if err != nil {
		return domain.Settings{}, err
	}
	return st.Settings, nil
}
