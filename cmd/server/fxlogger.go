package main

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx/fxevent"
)

// fxLogger routes fx lifecycle events through zerolog. Only failures and
// the start/stop milestones are worth more than debug.
type fxLogger struct {
	logger zerolog.Logger
}

func (l *fxLogger) LogEvent(event fxevent.Event) {
	switch e := event.(type) {
	case *fxevent.OnStartExecuted:
		if e.Err != nil {
			l.logger.Error().Err(e.Err).Str("callee", e.FunctionName).Msg("start hook failed")
		}
	case *fxevent.OnStopExecuted:
		if e.Err != nil {
			l.logger.Error().Err(e.Err).Str("callee", e.FunctionName).Msg("stop hook failed")
		}
	case *fxevent.Provided:
		if e.Err != nil {
			l.logger.Error().Err(e.Err).Msg("provide failed")
			return
		}
		for _, name := range e.OutputTypeNames {
			l.logger.Debug().Str("type", name).Str("constructor", e.ConstructorName).Msg("provided")
		}
	case *fxevent.Invoked:
		if e.Err != nil {
			l.logger.Error().Err(e.Err).Str("function", e.FunctionName).Msg("invoke failed")
		}
	case *fxevent.Started:
		if e.Err != nil {
			l.logger.Error().Err(e.Err).Msg("start failed")
			return
		}
		l.logger.Info().Msg("application started")
	case *fxevent.Stopped:
		if e.Err != nil {
			l.logger.Error().Err(e.Err).Msg("stop failed")
		}
	}
}
