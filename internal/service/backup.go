package service

import (
	"context"
	"fmt"
	"time"

	"guild-tracker/internal/backup"
	"guild-tracker/internal/constants"
	"guild-tracker/internal/repository"

	"github.com/rs/zerolog"
)

type Export struct {
	Filename string
	Body     []byte
}

type ImportResult struct {
	Members int            `json:"members"`
	Issues  []backup.Issue `json:"issues"`
}

type BackupService struct {
	store  *repository.Store
	logger zerolog.Logger
	now    func() time.Time
}

func NewBackupService(store *repository.Store, logger zerolog.Logger) *BackupService {
	return &BackupService{store: store, logger: logger, now: time.Now}
}

func (s *BackupService) Export(ctx context.Context) (*Export, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	st, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	now := s.now()
	body, err := backup.Encode(st.Roster, st.Settings, now)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int("members", len(st.Roster)).Int("bytes", len(body)).Msg("backup exported")
	return &Export{Filename: backup.Filename(now), Body: body}, nil
}

// Import replaces the roster and the backed-up settings with the contents
// of raw. Page and sort state are kept; history is untouched.
func (s *BackupService) Import(ctx context.Context, raw []byte) (*ImportResult, error) {
	if len(raw) > constants.MaxBackupBytes {
		return nil, fmt.Errorf("%w: backup larger than %d bytes", backup.ErrInvalidBackup, constants.MaxBackupBytes)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	result := &ImportResult{}
	_, err := s.store.Update(ctx, func(st *repository.State) error {
		restored, err := backup.Decode(raw, st.Settings)
		if err != nil {
			return err
		}
		st.Roster = restored.Members
		st.Settings = restored.Settings
		result.Members = len(restored.Members)
		result.Issues = restored.Issues
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Int("bytes", len(raw)).Msg("backup rejected")
		return nil, err
	}

	if result.Issues == nil {
		result.Issues = []backup.Issue{}
	}
	s.logger.Info().Int("members", result.Members).Int("issues", len(result.Issues)).Msg("backup imported")
	return result, nil
}
