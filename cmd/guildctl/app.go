package main

import (
	"database/sql"
	"fmt"
	"os"

	"guild-tracker/internal/config"
	"guild-tracker/internal/database"
	"guild-tracker/internal/db"
	"guild-tracker/internal/domain"
	"guild-tracker/internal/logger"
	"guild-tracker/internal/repository"
	"guild-tracker/internal/service"

	"github.com/spf13/cobra"
)

// app holds the services a command needs, wired over one database.
type app struct {
	db     *sql.DB
	store  *repository.Store
	roster *service.RosterService
	backup *service.BackupService
}

func openApp(cmd *cobra.Command) (*app, error) {
	path, _ := cmd.Flags().GetString("db")
	level, _ := cmd.Flags().GetString("log-level")

	log := logger.Build(level, "console", os.Stderr)

	sqlDB, err := database.Open(path, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	queries := db.New(sqlDB)
	cfg := &config.Config{DBPath: path, Defaults: domain.DefaultSettings()}
	store := repository.NewStore(
		sqlDB,
		queries,
		repository.NewMemberRepository(sqlDB, queries, log),
		repository.NewSettingsRepository(queries, cfg, log),
		repository.NewHistoryRepository(queries, log),
		log,
	)

	return &app{
		db:     sqlDB,
		store:  store,
		roster: service.NewRosterService(store, log),
		backup: service.NewBackupService(store, log),
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}
