package db

import (
	"context"
)

const insertHistorySnapshot = `INSERT INTO history_snapshots (id, members, created_at) VALUES (?, ?, ?)`

type InsertHistorySnapshotParams = HistorySnapshot

func (q *Queries) InsertHistorySnapshot(ctx context.Context, arg InsertHistorySnapshotParams) error {
	_, err := q.db.ExecContext(ctx, insertHistorySnapshot, arg.ID, arg.Members, arg.CreatedAt)
	return err
}

const listHistorySnapshots = `SELECT id, members, created_at
FROM history_snapshots
ORDER BY created_at DESC
LIMIT ?`

func (q *Queries) ListHistorySnapshots(ctx context.Context, limit int64) ([]HistorySnapshot, error) {
	rows, err := q.db.QueryContext(ctx, listHistorySnapshots, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []HistorySnapshot
	for rows.Next() {
		var i HistorySnapshot
		if err := rows.Scan(&i.ID, &i.Members, &i.CreatedAt); err != nil {
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

const deleteAllHistory = `DELETE FROM history_snapshots`

func (q *Queries) DeleteAllHistory(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllHistory)
	return err
}
