package server

import (
	"context"

	"guild-tracker/internal/service"
)

type GuildServer struct {
	roster    *service.RosterService
	settings  *service.SettingsService
	dashboard *service.DashboardService
	scan      *service.ScanService
	backup    *service.BackupService
}

func NewGuildServer(
	roster *service.RosterService,
	settings *service.SettingsService,
	dashboard *service.DashboardService,
	scan *service.ScanService,
	backup *service.BackupService,
) *GuildServer {
	return &GuildServer{
		roster:    roster,
		settings:  settings,
		dashboard: dashboard,
		scan:      scan,
		backup:    backup,
	}
}

func (s *GuildServer) GetDashboard(ctx context.Context, req *GetDashboardRequest) (*service.Dashboard, error) {
	return s.dashboard.Get(ctx, req.Search)
}

func (s *GuildServer) ListMembers(ctx context.Context, _ *Empty) (*MembersResponse, error) {
	members, err := s.roster.List(ctx)
	if err != nil {
		return nil, err
	}
	return &MembersResponse{Members: members}, nil
}

func (s *GuildServer) AddMembers(ctx context.Context, req *AddMembersRequest) (*MembersResponse, error) {
	names := append(req.Names, service.SplitNames(req.Text)...)
	members, err := s.roster.AddMembers(ctx, names)
	if err != nil {
		return nil, err
	}
	return &MembersResponse{Members: members}, nil
}

func (s *GuildServer) DeleteMember(ctx context.Context, req *MemberRequest) (*Empty, error) {
	if err := s.roster.DeleteMember(ctx, req.ID); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

func (s *GuildServer) RenameMember(ctx context.Context, req *RenameMemberRequest) (*MemberResponse, error) {
	m, err := s.roster.RenameMember(ctx, req.ID, req.Name)
	if err != nil {
		return nil, err
	}
	return &MemberResponse{Member: m}, nil
}

func (s *GuildServer) UpdateProfile(ctx context.Context, req *UpdateProfileRequest) (*MemberResponse, error) {
	m, err := s.roster.UpdateProfile(ctx, req.ID, req.Note, req.Avatar)
	if err != nil {
		return nil, err
	}
	return &MemberResponse{Member: m}, nil
}

func (s *GuildServer) UpdateMemberValue(ctx context.Context, req *UpdateMemberValueRequest) (*MemberResponse, error) {
	m, err := s.roster.UpdateMemberValue(ctx, req.ID, req.BossIndex, req.Value)
	if err != nil {
		return nil, err
	}
	return &MemberResponse{Member: m}, nil
}

func (s *GuildServer) ResetWeek(ctx context.Context, _ *Empty) (*Empty, error) {
	if err := s.roster.ResetWeek(ctx); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

func (s *GuildServer) SortMembers(ctx context.Context, req *SortMembersRequest) (*MembersResponse, error) {
	members, err := s.roster.SortMembers(ctx, req.Key, req.Index, req.Order)
	if err != nil {
		return nil, err
	}
	return &MembersResponse{Members: members}, nil
}

func (s *GuildServer) ListHistory(ctx context.Context, _ *Empty) (*HistoryResponse, error) {
	snapshots, err := s.roster.ListHistory(ctx)
	if err != nil {
		return nil, err
	}
	return &HistoryResponse{Snapshots: snapshots}, nil
}

func (s *GuildServer) GetSettings(ctx context.Context, _ *Empty) (*SettingsResponse, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &SettingsResponse{Settings: settings}, nil
}

func (s *GuildServer) UpdateView(ctx context.Context, req *UpdateViewRequest) (*SettingsResponse, error) {
	settings, err := s.settings.UpdateView(ctx, service.ViewPatch{
		Page:     req.Page,
		Mode:     req.Mode,
		Filter:   req.Filter,
		Language: req.Language,
	})
	if err != nil {
		return nil, err
	}
	return &SettingsResponse{Settings: settings}, nil
}

func (s *GuildServer) UpdateDays(ctx context.Context, req *UpdateDaysRequest) (*SettingsResponse, error) {
	settings, err := s.settings.UpdateDays(ctx, req.Days1, req.Days2)
	if err != nil {
		return nil, err
	}
	return &SettingsResponse{Settings: settings}, nil
}

func (s *GuildServer) UpdateConfig(ctx context.Context, req *UpdateConfigRequest) (*SettingsResponse, error) {
	settings, err := s.settings.UpdateConfig(ctx, service.ConfigPatch{
		BossMaxHP:   req.BossMaxHP,
		OCRKeywords: req.OCRKeywords,
		Tiers:       req.Tiers,
	})
	if err != nil {
		return nil, err
	}
	return &SettingsResponse{Settings: settings}, nil
}

func (s *GuildServer) ToggleDeadBoss(ctx context.Context, req *ToggleDeadBossRequest) (*DeadBossesResponse, error) {
	dead, err := s.settings.ToggleDeadBoss(ctx, req.Page, req.Index)
	if err != nil {
		return nil, err
	}
	return &DeadBossesResponse{DeadBosses: dead}, nil
}

func (s *GuildServer) FactoryReset(ctx context.Context, _ *Empty) (*SettingsResponse, error) {
	settings, err := s.settings.FactoryReset(ctx)
	if err != nil {
		return nil, err
	}
	return &SettingsResponse{Settings: settings}, nil
}

func (s *GuildServer) ScanText(ctx context.Context, req *ScanTextRequest) (*service.ScanResult, error) {
	return s.scan.ScanText(ctx, req.Text, req.BossIndex)
}

func (s *GuildServer) ScanImage(ctx context.Context, req *ScanImageRequest) (*service.ScanResult, error) {
	return s.scan.ScanImage(ctx, req.Image, req.BossIndex)
}

func (s *GuildServer) ScanMember(ctx context.Context, req *ScanMemberRequest) (*service.MemberScanResult, error) {
	if req.Text == "" && len(req.Image) > 0 {
		return s.scan.ScanMemberImage(ctx, req.ID, req.BossIndex, req.Image)
	}
	return s.scan.ScanMember(ctx, req.ID, req.BossIndex, req.Text)
}

func (s *GuildServer) ExportBackup(ctx context.Context, _ *Empty) (*ExportBackupResponse, error) {
	export, err := s.backup.Export(ctx)
	if err != nil {
		return nil, err
	}
	return &ExportBackupResponse{Filename: export.Filename, Document: export.Body}, nil
}

func (s *GuildServer) ImportBackup(ctx context.Context, req *ImportBackupRequest) (*service.ImportResult, error) {
	return s.backup.Import(ctx, req.Document)
}
