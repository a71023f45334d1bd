package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"guild-tracker/internal/constants"
	"guild-tracker/internal/db"
	"guild-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

var ErrMemberNotFound = errors.New("member not found")

type MemberRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewMemberRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *MemberRepository {
	return &MemberRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// List returns the roster in display order.
func (r *MemberRepository) List(ctx context.Context) ([]domain.Member, error) {
	return r.list(ctx, r.queries)
}

func (r *MemberRepository) Get(ctx context.Context, id string) (*domain.Member, error) {
	row, err := r.queries.GetMember(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	m := toDomainMember(row)
	return &m, nil
}

func (r *MemberRepository) list(ctx context.Context, q *db.Queries) ([]domain.Member, error) {
	rows, err := q.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	result := make([]domain.Member, len(rows))
	for i, row := range rows {
		result[i] = toDomainMember(row)
	}
	return result, nil
}

// replaceAll makes the members table equal to roster: positions follow the
// slice order, rows missing from roster are deleted and members without an
// id are inserted under a fresh one. The ids are written back into roster.
func (r *MemberRepository) replaceAll(ctx context.Context, q *db.Queries, roster []domain.Member) error {
	existing, err := q.ListMembers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list members: %w", err)
	}

	keep := make(map[string]bool, len(roster))
	for _, m := range roster {
		if m.ID != "" {
			keep[m.ID] = true
		}
	}
	for _, row := range existing {
		if keep[row.ID] {
			continue
		}
		if _, err := q.DeleteMember(ctx, row.ID); err != nil {
			return fmt.Errorf("failed to delete member %s: %w", row.ID, err)
		}
		r.logger.Debug().Str("member_id", row.ID).Str("name", row.Name).Msg("member removed")
	}

	now := time.Now().UTC()
	for start := 0; start < len(roster); start += constants.DBBatchSize {
		end := min(start+constants.DBBatchSize, len(roster))

		rows := make([]db.UpsertMemberParams, 0, end-start)
		for i := start; i < end; i++ {
			m := &roster[i]
			if m.ID == "" {
				id, err := gonanoid.New()
				if err != nil {
					return fmt.Errorf("failed to generate nanoid: %w", err)
				}
				m.ID = id
			}
			rows = append(rows, toMemberRow(*m, int64(i), now))
		}

		if err := q.UpsertMembers(ctx, rows); err != nil {
			return fmt.Errorf("failed to upsert members %d-%d: %w", start, end-1, err)
		}
	}
	return nil
}

func toDomainMember(row db.Member) domain.Member {
	return domain.Member{
		ID:     row.ID,
		Name:   row.Name,
		V:      [domain.ShadowBossCount]int64{row.Attempts0, row.Attempts1, row.Attempts2, row.Attempts3},
		V2:     row.DestructionAttempts,
		D:      [domain.ShadowBossCount]int64{row.Damage0, row.Damage1, row.Damage2, row.Damage3},
		Note:   row.Note,
		Avatar: row.Avatar,
	}
}

func toMemberRow(m domain.Member, position int64, now time.Time) db.UpsertMemberParams {
	return db.UpsertMemberParams{
		ID:                  m.ID,
		Position:            position,
		Name:                m.Name,
		Attempts0:           m.V[0],
		Attempts1:           m.V[1],
		Attempts2:           m.V[2],
		Attempts3:           m.V[3],
		Damage0:             m.D[0],
		Damage1:             m.D[1],
		Damage2:             m.D[2],
		Damage3:             m.D[3],
		DestructionAttempts: m.V2,
		Note:                m.Note,
		Avatar:              m.Avatar,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}
