package middleware

import (
	"context"
	"log/slog"

	"github.com/mcoot/brainplay/internal/dependencies/clock"
)

// Logging logs the outcome and duration of the wrapped action
func Logging(logger *slog.Logger, clk clock.Clock, name string) func(Action) Action {
	return func(next Action) Action {
		return func(ctx context.Context) error {
			start := clk.Now()

			err := next(ctx)

			attrs := []slog.Attr{
				slog.String("action", name),
				slog.Duration("duration", clk.Now().Sub(start)),
			}
			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
				logger.LogAttrs(ctx, slog.LevelWarn, "action failed", attrs...)
				return err
			}
			logger.LogAttrs(ctx, slog.LevelInfo, "action finished", attrs...)
			return nil
		}
	}
}

// Chain applies middlewares so the first one listed is outermost
func Chain(action Action, middlewares ...func(Action) Action) Action {
	for i := len(middlewares) - 1; i >= 0; i-- {
		action = middlewares[i](action)
	}
	return action
}
