// Package backup reads and writes the JSON backup document shared with the
// browser client.
package backup

import (
	"encoding/json"
	"fmt"
	"time"

	"guild-tracker/internal/domain"
)

const Version = 1

type Document struct {
	Version     int       `json:"version"`
	GeneratedAt time.Time `json:"generatedAt"`
	Data        Data      `json:"data"`
}

type Data struct {
	Members    []domain.Member      `json:"members"`
	Config     domain.TrackerConfig `json:"config"`
	Days1      int                  `json:"days1"`
	Days2      int                  `json:"days2"`
	DeadBosses domain.DeadBosses    `json:"deadBosses"`
	Language   domain.Language      `json:"language"`
	Mode       domain.Mode          `json:"mode"`
	Filter     domain.Filter        `json:"filter"`
}

// Encode renders the roster and settings as an indented backup document.
// Storage ids are not part of the format and are dropped.
func Encode(members []domain.Member, s domain.Settings, now time.Time) ([]byte, error) {
	exported := make([]domain.Member, len(members))
	for i, m := range members {
		m.ID = ""
		exported[i] = m
	}

	doc := Document{
		Version:     Version,
		GeneratedAt: now.UTC(),
		Data: Data{
			Members:    exported,
			Config:     s.Config,
			Days1:      s.Days1,
			Days2:      s.Days2,
			DeadBosses: s.DeadBosses,
			Language:   s.Language,
			Mode:       s.Mode,
			Filter:     s.Filter,
		},
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal backup: %w", err)
	}
	return out, nil
}

// Filename is the download name used for a backup taken at t.
func Filename(t time.Time) string {
	return fmt.Sprintf("bossguild-backup-%s.json", t.UTC().Format("2006-01-02"))
}
