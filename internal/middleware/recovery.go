package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
)

// Action is one top-level command run by the CLI
type Action func(ctx context.Context) error

// ErrPanic wraps a recovered panic
var ErrPanic = errors.New("internal error")

// Recovery turns a panic in the wrapped action into an error after logging it
func Recovery(logger *slog.Logger, name string) func(Action) Action {
	return func(next Action) Action {
		return func(ctx context.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("panic recovered",
						slog.Any("error", r),
						slog.String("stack", string(debug.Stack())),
						slog.String("action", name),
					)
					err = fmt.Errorf("%w: %v", ErrPanic, r)
				}
			}()

			return next(ctx)
		}
	}
}
