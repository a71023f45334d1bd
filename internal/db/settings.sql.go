package db

import (
	"context"
)

const getSettings = `SELECT id, page, days1, days2, mode, filter, language, dead_bosses,
       boss_max_hp, ocr_keywords, tier_s, tier_a, tier_b, tier_c, tier_d,
       sort_key, sort_order, sort_index, updated_at
FROM settings
WHERE id = 1`

func (q *Queries) GetSettings(ctx context.Context) (Setting, error) {
	row := q.db.QueryRowContext(ctx, getSettings)
	var i Setting
	err := row.Scan(
		&i.ID,
		&i.Page,
		&i.Days1,
		&i.Days2,
		&i.Mode,
		&i.Filter,
		&i.Language,
		&i.DeadBosses,
		&i.BossMaxHp,
		&i.OcrKeywords,
		&i.TierS,
		&i.TierA,
		&i.TierB,
		&i.TierC,
		&i.TierD,
		&i.SortKey,
		&i.SortOrder,
		&i.SortIndex,
		&i.UpdatedAt,
	)
	return i, err
}

const upsertSettings = `INSERT INTO settings (
    id, page, days1, days2, mode, filter, language, dead_bosses,
    boss_max_hp, ocr_keywords, tier_s, tier_a, tier_b, tier_c, tier_d,
    sort_key, sort_order, sort_index, updated_at
) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    page = excluded.page,
    days1 = excluded.days1,
    days2 = excluded.days2,
    mode = excluded.mode,
    filter = excluded.filter,
    language = excluded.language,
    dead_bosses = excluded.dead_bosses,
    boss_max_hp = excluded.boss_max_hp,
    ocr_keywords = excluded.ocr_keywords,
    tier_s = excluded.tier_s,
    tier_a = excluded.tier_a,
    tier_b = excluded.tier_b,
    tier_c = excluded.tier_c,
    tier_d = excluded.tier_d,
    sort_key = excluded.sort_key,
    sort_order = excluded.sort_order,
    sort_index = excluded.sort_index,
    updated_at = excluded.updated_at`

type UpsertSettingsParams = Setting

func (q *Queries) UpsertSettings(ctx context.Context, arg UpsertSettingsParams) error {
	_, err := q.db.ExecContext(ctx, upsertSettings,
		arg.Page,
		arg.Days1,
		arg.Days2,
		arg.Mode,
		arg.Filter,
		arg.Language,
		arg.DeadBosses,
		arg.BossMaxHp,
		arg.OcrKeywords,
		arg.TierS,
		arg.TierA,
		arg.TierB,
		arg.TierC,
		arg.TierD,
		arg.SortKey,
		arg.SortOrder,
		arg.SortIndex,
		arg.UpdatedAt,
	)
	return err
}
