package fx

import (
	"database/sql"

	"guild-tracker/internal/api"
	"guild-tracker/internal/config"
	"guild-tracker/internal/database"
	"guild-tracker/internal/db"
	"guild-tracker/internal/logger"
	"guild-tracker/internal/repository"
	"guild-tracker/internal/server"
	"guild-tracker/internal/service"

	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

// Storage is everything below the services. cmd/guildctl uses it on its own.
var Storage = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// repos
	fx.Provide(repository.NewMemberRepository),
	fx.Provide(repository.NewSettingsRepository),
	fx.Provide(repository.NewHistoryRepository),
	fx.Provide(repository.NewStore),
)

var Module = fx.Options(
	Storage,
	// api client
	fx.Provide(api.NewRecognitionClient),
	// svc
	fx.Provide(service.NewRosterService),
	fx.Provide(service.NewSettingsService),
	fx.Provide(service.NewDashboardService),
	fx.Provide(service.NewScanService),
	fx.Provide(service.NewBackupService),
	// server
	fx.Provide(server.NewGuildServer),
)
