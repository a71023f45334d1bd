package service

import (
	"context"
	"fmt"

	"guild-tracker/internal/analytics"
	"guild-tracker/internal/constants"
	"guild-tracker/internal/domain"
	"guild-tracker/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type DashboardRow struct {
	Member domain.Member      `json:"member"`
	Stats  domain.MemberStats `json:"stats"`
	Tier   domain.Tier        `json:"tier"`
}

type Dashboard struct {
	Settings   domain.Settings  `json:"settings"`
	Rows       []DashboardRow   `json:"rows"`
	Analytics  domain.Analytics `json:"analytics"`
	BossHealth []domain.BossHP  `json:"bossHealth"`
	GrandLabel string           `json:"grandLabel"`
	RosterSize int              `json:"rosterSize"`
}

type DashboardService struct {
	store  *repository.Store
	logger zerolog.Logger
}

func NewDashboardService(store *repository.Store, logger zerolog.Logger) *DashboardService {
	return &DashboardService{store: store, logger: logger}
}

// Get builds the dashboard for the current page. Rows honour the stored
// filter and the search text; analytics always cover the whole roster.
func (s *DashboardService) Get(ctx context.Context, search string) (*Dashboard, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var (
		roster   []domain.Member
		settings domain.Settings
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		roster, err = s.store.Members.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		settings, err = s.store.Settings.Get(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	}

	actx := analytics.NewContext(settings)
	visible := analytics.FilterMembers(roster, settings.Filter, search, actx)

	rows := make([]DashboardRow, len(visible))
	for i, m := range visible {
		rows[i] = DashboardRow{
			Member: m,
			Stats:  analytics.ComputeStats(m, actx),
			Tier:   analytics.ClassifyTier(m, actx),
		}
	}

	summary := analytics.ComputeAnalytics(roster, actx)

	s.logger.Debug().
		Int("roster_size", len(roster)).
		Int("visible", len(rows)).
		Float64("percent", summary.Percent).
		Msg("dashboard built")

	return &Dashboard{
		Settings:   settings,
		Rows:       rows,
		Analytics:  summary,
		BossHealth: analytics.BossHealth(roster, settings.Config.BossMaxHP, settings.DeadBosses),
		GrandLabel: analytics.FormatLargeNumber(summary.GrandTotal),
		RosterSize: len(roster),
	}, nil
}
