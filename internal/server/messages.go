package server

import (
	"encoding/json"

	"guild-tracker/internal/domain"
)

type Empty struct{}

type GetDashboardRequest struct {
	Search string `json:"search"`
}

type MembersResponse struct {
	Members []domain.Member `json:"members"`
}

type MemberResponse struct {
	Member domain.Member `json:"member"`
}

// AddMembersRequest adds Names plus one member per non-blank line of Text.
type AddMembersRequest struct {
	Names []string `json:"names"`
	Text  string   `json:"text"`
}

type MemberRequest struct {
	ID string `json:"id"`
}

type RenameMemberRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type UpdateProfileRequest struct {
	ID     string `json:"id"`
	Note   string `json:"note"`
	Avatar string `json:"avatar"`
}

type UpdateMemberValueRequest struct {
	ID        string `json:"id"`
	BossIndex int    `json:"bossIndex"`
	Value     string `json:"value"`
}

type SortMembersRequest struct {
	Key   domain.SortKey   `json:"key"`
	Index int              `json:"index"`
	Order domain.SortOrder `json:"order,omitempty"`
}

type HistoryResponse struct {
	Snapshots []domain.HistorySnapshot `json:"snapshots"`
}

type SettingsResponse struct {
	Settings domain.Settings `json:"settings"`
}

// UpdateViewRequest changes any combination of the view settings.
type UpdateViewRequest struct {
	Page     *domain.Page     `json:"page,omitempty"`
	Mode     *domain.Mode     `json:"mode,omitempty"`
	Filter   *domain.Filter   `json:"filter,omitempty"`
	Language *domain.Language `json:"language,omitempty"`
}

type UpdateDaysRequest struct {
	Days1 int `json:"days1"`
	Days2 int `json:"days2"`
}

type UpdateConfigRequest struct {
	BossMaxHP   *int64                 `json:"bossMaxHp,omitempty"`
	OCRKeywords *string                `json:"ocrKeywords,omitempty"`
	Tiers       *domain.TierThresholds `json:"tiers,omitempty"`
}

type ToggleDeadBossRequest struct {
	Page  domain.Page `json:"page"`
	Index int         `json:"index"`
}

type DeadBossesResponse struct {
	DeadBosses domain.DeadBosses `json:"deadBosses"`
}

type ScanTextRequest struct {
	Text      string `json:"text"`
	BossIndex int    `json:"bossIndex"`
}

// ScanImageRequest carries the screenshot base64 encoded, as encoding/json
// does for byte slices.
type ScanImageRequest struct {
	Image     []byte `json:"image"`
	BossIndex int    `json:"bossIndex"`
}

// ScanMemberRequest reads one member's score from Text, or from Image when
// Text is empty.
type ScanMemberRequest struct {
	ID        string `json:"id"`
	BossIndex int    `json:"bossIndex"`
	Text      string `json:"text,omitempty"`
	Image     []byte `json:"image,omitempty"`
}

type ExportBackupResponse struct {
	Filename string          `json:"filename"`
	Document json.RawMessage `json:"document"`
}

type ImportBackupRequest struct {
	Document json.RawMessage `json:"document"`
}
