package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"guild-tracker/internal/db"
	"guild-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

// HistoryRepository keeps the roster snapshots taken at each weekly reset.
type HistoryRepository struct {
	queries *db.Queries
	logger  zerolog.Logger
}

func NewHistoryRepository(queries *db.Queries, logger zerolog.Logger) *HistoryRepository {
	return &HistoryRepository{
		queries: queries,
		logger:  logger,
	}
}

// List returns up to limit snapshots, newest first.
func (r *HistoryRepository) List(ctx context.Context, limit int) ([]domain.HistorySnapshot, error) {
	rows, err := r.queries.ListHistorySnapshots(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	result := make([]domain.HistorySnapshot, 0, len(rows))
	for _, row := range rows {
		var members []domain.Member
		if err := json.Unmarshal([]byte(row.Members), &members); err != nil {
			r.logger.Warn().Err(err).Str("snapshot_id", row.ID).Msg("skipping unreadable history snapshot")
			continue
		}
		result = append(result, domain.HistorySnapshot{
			ID:        row.ID,
			Members:   members,
			CreatedAt: row.CreatedAt,
		})
	}
	return result, nil
}

func (r *HistoryRepository) append(ctx context.Context, q *db.Queries, members []domain.Member) (string, error) {
	payload, err := json.Marshal(members)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("failed to generate nanoid: %w", err)
	}

	err = q.InsertHistorySnapshot(ctx, db.InsertHistorySnapshotParams{
		ID:        id,
		Members:   string(payload),
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to insert snapshot: %w", err)
	}
	return id, nil
}
