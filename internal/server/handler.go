package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"guild-tracker/internal/api"
	"guild-tracker/internal/backup"
	"guild-tracker/internal/service"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
)

const GuildTrackerName = "guild.v1.GuildTracker"

const (
	GetDashboardProcedure      = "/" + GuildTrackerName + "/GetDashboard"
	ListMembersProcedure       = "/" + GuildTrackerName + "/ListMembers"
	AddMembersProcedure        = "/" + GuildTrackerName + "/AddMembers"
	DeleteMemberProcedure      = "/" + GuildTrackerName + "/DeleteMember"
	RenameMemberProcedure      = "/" + GuildTrackerName + "/RenameMember"
	UpdateProfileProcedure     = "/" + GuildTrackerName + "/UpdateProfile"
	UpdateMemberValueProcedure = "/" + GuildTrackerName + "/UpdateMemberValue"
	ResetWeekProcedure         = "/" + GuildTrackerName + "/ResetWeek"
	SortMembersProcedure       = "/" + GuildTrackerName + "/SortMembers"
	ListHistoryProcedure       = "/" + GuildTrackerName + "/ListHistory"
	GetSettingsProcedure       = "/" + GuildTrackerName + "/GetSettings"
	UpdateViewProcedure        = "/" + GuildTrackerName + "/UpdateView"
	UpdateDaysProcedure        = "/" + GuildTrackerName + "/UpdateDays"
	UpdateConfigProcedure      = "/" + GuildTrackerName + "/UpdateConfig"
	ToggleDeadBossProcedure    = "/" + GuildTrackerName + "/ToggleDeadBoss"
	FactoryResetProcedure      = "/" + GuildTrackerName + "/FactoryReset"
	ScanTextProcedure          = "/" + GuildTrackerName + "/ScanText"
	ScanImageProcedure         = "/" + GuildTrackerName + "/ScanImage"
	ScanMemberProcedure        = "/" + GuildTrackerName + "/ScanMember"
	ExportBackupProcedure      = "/" + GuildTrackerName + "/ExportBackup"
	ImportBackupProcedure      = "/" + GuildTrackerName + "/ImportBackup"
)

// NewGuildTrackerHandler builds the HTTP handler serving every procedure and
// the path prefix to mount it on.
func NewGuildTrackerHandler(s *GuildServer, logger zerolog.Logger, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{
		connect.WithCodec(jsonCodec{}),
		connect.WithInterceptors(LoggingInterceptor(logger)),
	}, opts...)

	mux := http.NewServeMux()
	mux.Handle(GetDashboardProcedure, unary(GetDashboardProcedure, s.GetDashboard, opts))
	mux.Handle(ListMembersProcedure, unary(ListMembersProcedure, s.ListMembers, opts))
	mux.Handle(AddMembersProcedure, unary(AddMembersProcedure, s.AddMembers, opts))
	mux.Handle(DeleteMemberProcedure, unary(DeleteMemberProcedure, s.DeleteMember, opts))
	mux.Handle(RenameMemberProcedure, unary(RenameMemberProcedure, s.RenameMember, opts))
	mux.Handle(UpdateProfileProcedure, unary(UpdateProfileProcedure, s.UpdateProfile, opts))
	mux.Handle(UpdateMemberValueProcedure, unary(UpdateMemberValueProcedure, s.UpdateMemberValue, opts))
	mux.Handle(ResetWeekProcedure, unary(ResetWeekProcedure, s.ResetWeek, opts))
	mux.Handle(SortMembersProcedure, unary(SortMembersProcedure, s.SortMembers, opts))
	mux.Handle(ListHistoryProcedure, unary(ListHistoryProcedure, s.ListHistory, opts))
	mux.Handle(GetSettingsProcedure, unary(GetSettingsProcedure, s.GetSettings, opts))
	mux.Handle(UpdateViewProcedure, unary(UpdateViewProcedure, s.UpdateView, opts))
	mux.Handle(UpdateDaysProcedure, unary(UpdateDaysProcedure, s.UpdateDays, opts))
	mux.Handle(UpdateConfigProcedure, unary(UpdateConfigProcedure, s.UpdateConfig, opts))
	mux.Handle(ToggleDeadBossProcedure, unary(ToggleDeadBossProcedure, s.ToggleDeadBoss, opts))
	mux.Handle(FactoryResetProcedure, unary(FactoryResetProcedure, s.FactoryReset, opts))
	mux.Handle(ScanTextProcedure, unary(ScanTextProcedure, s.ScanText, opts))
	mux.Handle(ScanImageProcedure, unary(ScanImageProcedure, s.ScanImage, opts))
	mux.Handle(ScanMemberProcedure, unary(ScanMemberProcedure, s.ScanMember, opts))
	mux.Handle(ExportBackupProcedure, unary(ExportBackupProcedure, s.ExportBackup, opts))
	mux.Handle(ImportBackupProcedure, unary(ImportBackupProcedure, s.ImportBackup, opts))

	return "/" + GuildTrackerName + "/", mux
}

func unary[Req, Res any](procedure string, fn func(context.Context, *Req) (*Res, error), opts []connect.HandlerOption) *connect.Handler {
	return connect.NewUnaryHandler(procedure, func(ctx context.Context, req *connect.Request[Req]) (*connect.Response[Res], error) {
		res, err := fn(ctx, req.Msg)
		if err != nil {
			return nil, toConnectError(err)
		}
		return connect.NewResponse(res), nil
	}, opts...)
}

func toConnectError(err error) *connect.Error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	code := connect.CodeInternal
	switch {
	case errors.Is(err, service.ErrMemberNotFound):
		code = connect.CodeNotFound
	case errors.Is(err, service.ErrInvalidArgument),
		errors.Is(err, service.ErrInvalidBossIndex),
		errors.Is(err, backup.ErrInvalidBackup),
		errors.Is(err, api.ErrUnsupportedImage):
		code = connect.CodeInvalidArgument
	case errors.Is(err, api.ErrRecognitionDisabled):
		code = connect.CodeFailedPrecondition
	case errors.Is(err, api.ErrRateLimited):
		code = connect.CodeResourceExhausted
	case errors.Is(err, context.DeadlineExceeded):
		code = connect.CodeDeadlineExceeded
	case errors.Is(err, context.Canceled):
		code = connect.CodeCanceled
	}
	return connect.NewError(code, err)
}

// LoggingInterceptor logs every unary call with its outcome and duration,
// using the request-scoped logger when the middleware installed one.
func LoggingInterceptor(fallback zerolog.Logger) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			logger := zerolog.Ctx(ctx)
			if logger.GetLevel() == zerolog.Disabled {
				logger = &fallback
			}

			res, err := next(ctx, req)

			event := logger.Debug()
			if err != nil {
				code := connect.CodeOf(err)
				event = logger.Warn().Err(err).Str("code", code.String())
				if code == connect.CodeInternal {
					event = logger.Error().Err(err)
				}
			}
			event.
				Str("procedure", req.Spec().Procedure).
				Dur("duration", time.Since(start)).
				Msg("rpc handled")
			return res, err
		}
	}
}
