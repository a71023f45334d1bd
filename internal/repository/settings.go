package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"guild-tracker/internal/config"
	"guild-tracker/internal/db"
	"guild-tracker/internal/domain"

	"github.com/rs/zerolog"
)

type SettingsRepository struct {
	queries  *db.Queries
	defaults domain.Settings
	logger   zerolog.Logger
}

func NewSettingsRepository(queries *db.Queries, cfg *config.Config, logger zerolog.Logger) *SettingsRepository {
	return &SettingsRepository{
		queries:  queries,
		defaults: cfg.Defaults,
		logger:   logger,
	}
}

// Get returns the stored settings, or the configured defaults when nothing
// has been saved yet.
func (r *SettingsRepository) Get(ctx context.Context) (domain.Settings, error) {
	return r.get(ctx, r.queries)
}

func (r *SettingsRepository) Defaults() domain.Settings {
	return r.defaults
}

func (r *SettingsRepository) get(ctx context.Context, q *db.Queries) (domain.Settings, error) {
	row, err := q.GetSettings(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		r.logger.Debug().Msg("no stored settings, using defaults")
		return r.defaults, nil
	}
	if err != nil {
		return domain.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	var dead domain.DeadBosses
	if err := json.Unmarshal([]byte(row.DeadBosses), &dead); err != nil {
		r.logger.Warn().Err(err).Str("dead_bosses", row.DeadBosses).Msg("unreadable dead boss flags, clearing")
		dead = domain.DeadBosses{}
	}

	return domain.Settings{
		Page:       domain.Page(row.Page),
		Days1:      int(row.Days1),
		Days2:      int(row.Days2),
		Mode:       domain.Mode(row.Mode),
		Filter:     domain.Filter(row.Filter),
		Language:   domain.Language(row.Language),
		DeadBosses: dead,
		Config: domain.TrackerConfig{
			BossMaxHP:   row.BossMaxHp,
			OCRKeywords: row.OcrKeywords,
			Tiers: domain.TierThresholds{
				S: row.TierS,
				A: row.TierA,
				B: row.TierB,
				C: row.TierC,
				D: row.TierD,
			},
		},
		Sort: domain.SortState{
			Key:   domain.SortKey(row.SortKey),
			Order: domain.SortOrder(row.SortOrder),
			Index: int(row.SortIndex),
		},
	}, nil
}

func (r *SettingsRepository) save(ctx context.Context, q *db.Queries, s domain.Settings) error {
	dead, err := json.Marshal(s.DeadBosses)
	if err != nil {
		return fmt.Errorf("failed to encode dead boss flags: %w", err)
	}

	err = q.UpsertSettings(ctx, db.UpsertSettingsParams{
		Page:        int64(s.Page),
		Days1:       int64(s.Days1),
		Days2:       int64(s.Days2),
		Mode:        string(s.Mode),
		Filter:      string(s.Filter),
		Language:    string(s.Language),
		DeadBosses:  string(dead),
		BossMaxHp:   s.Config.BossMaxHP,
		OcrKeywords: s.Config.OCRKeywords,
		TierS:       s.Config.Tiers.S,
		TierA:       s.Config.Tiers.A,
		TierB:       s.Config.Tiers.B,
		TierC:       s.Config.Tiers.C,
		TierD:       s.Config.Tiers.D,
		SortKey:     string(s.Sort.Key),
		SortOrder:   string(s.Sort.Order),
		SortIndex:   int64(s.Sort.Index),
		UpdatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
