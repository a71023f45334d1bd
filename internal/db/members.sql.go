package db

import (
	"context"
	"strings"
)

const memberColumns = `id, position, name,
       attempts_0, attempts_1, attempts_2, attempts_3,
       damage_0, damage_1, damage_2, damage_3,
       destruction_attempts, note, avatar, created_at, updated_at`

func scanMember(row interface{ Scan(...interface{}) error }) (Member, error) {
	var i Member
	err := row.Scan(
		&i.ID,
		&i.Position,
		&i.Name,
		&i.Attempts0,
		&i.Attempts1,
		&i.Attempts2,
		&i.Attempts3,
		&i.Damage0,
		&i.Damage1,
		&i.Damage2,
		&i.Damage3,
		&i.DestructionAttempts,
		&i.Note,
		&i.Avatar,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listMembers = `SELECT ` + memberColumns + `
FROM members
ORDER BY position ASC, created_at ASC`

func (q *Queries) ListMembers(ctx context.Context) ([]Member, error) {
	rows, err := q.db.QueryContext(ctx, listMembers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Member
	for rows.Next() {
		i, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getMember = `SELECT ` + memberColumns + `
FROM members
WHERE id = ?`

func (q *Queries) GetMember(ctx context.Context, id string) (Member, error) {
	row := q.db.QueryRowContext(ctx, getMember, id)
	return scanMember(row)
}

const memberPlaceholders = `(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const upsertMembersConflict = `
ON CONFLICT(id) DO UPDATE SET
    position = excluded.position,
    name = excluded.name,
    attempts_0 = excluded.attempts_0,
    attempts_1 = excluded.attempts_1,
    attempts_2 = excluded.attempts_2,
    attempts_3 = excluded.attempts_3,
    damage_0 = excluded.damage_0,
    damage_1 = excluded.damage_1,
    damage_2 = excluded.damage_2,
    damage_3 = excluded.damage_3,
    destruction_attempts = excluded.destruction_attempts,
    note = excluded.note,
    avatar = excluded.avatar,
    updated_at = excluded.updated_at`

type UpsertMemberParams = Member

// UpsertMembers writes every row of args with a single multi-row statement.
func (q *Queries) UpsertMembers(ctx context.Context, args []UpsertMemberParams) error {
	if len(args) == 0 {
		return nil
	}

	query := `INSERT INTO members (` + memberColumns + `)
VALUES ` + strings.Repeat(memberPlaceholders+", ", len(args)-1) + memberPlaceholders + upsertMembersConflict

	values := make([]interface{}, 0, len(args)*16)
	for _, arg := range args {
		values = append(values,
			arg.ID,
			arg.Position,
			arg.Name,
			arg.Attempts0,
			arg.Attempts1,
			arg.Attempts2,
			arg.Attempts3,
			arg.Damage0,
			arg.Damage1,
			arg.Damage2,
			arg.Damage3,
			arg.DestructionAttempts,
			arg.Note,
			arg.Avatar,
			arg.CreatedAt,
			arg.UpdatedAt,
		)
	}

	_, err := q.db.ExecContext(ctx, query, values...)
	return err
}

const deleteMember = `DELETE FROM members WHERE id = ?`

func (q *Queries) DeleteMember(ctx context.Context, id string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteMember, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
