package db

import (
	"time"
)

type Member struct {
	ID                  string
	Position            int64
	Name                string
	Attempts0           int64
	Attempts1           int64
	Attempts2           int64
	Attempts3           int64
	Damage0             int64
	Damage1             int64
	Damage2             int64
	Damage3             int64
	DestructionAttempts int64
	Note                string
	Avatar              string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type Setting struct {
	ID          int64
	Page        int64
	Days1       int64
	Days2       int64
	Mode        string
	Filter      string
	Language    string
	DeadBosses  string
	BossMaxHp   int64
	OcrKeywords string
	TierS       int64
	TierA       int64
	TierB       int64
	TierC       int64
	TierD       int64
	SortKey     string
	SortOrder   string
	SortIndex   int64
	UpdatedAt   time.Time
}

type HistorySnapshot struct {
	ID        string
	Members   string
	CreatedAt time.Time
}
