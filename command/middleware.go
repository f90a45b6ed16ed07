package command

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/reglet-dev/nu-plugin-lua/domain/entities"
	"github.com/reglet-dev/nu-plugin-lua/domain/errors"
)

// Middleware is a function that wraps a RunFunc to add cross-cutting behavior.
// Middleware executes in FIFO order (first registered wraps first, onion model).
//
// Example usage:
//
//	timing := func(next RunFunc) RunFunc {
//	    return func(ctx context.Context, req *Request) (entities.Value, error) {
//	        start := time.Now()
//	        defer func() { metrics.Observe(time.Since(start)) }()
//	        return next(ctx, req)
//	    }
//	}
type Middleware func(next RunFunc) RunFunc

// RegistryOption is a functional option for configuring a Registry.
type RegistryOption func(*registryBuilder)

// PanicRecoveryMiddleware returns a middleware that catches panics and converts
// them to *errors.BugError instead of taking the host's plugin process down.
func PanicRecoveryMiddleware() Middleware {
	return func(next RunFunc) RunFunc {
		return func(ctx context.Context, req *Request) (v entities.Value, err error) {
			defer func() {
				if r := recover(); r != nil {
					v = entities.Value{}
					err = &errors.BugError{Message: fmt.Sprintf("%s panicked: %s", commandName(ctx), panicMessage(r))}
				}
			}()
			return next(ctx, req)
		}
	}
}

func panicMessage(r any) string {
	switch p := r.(type) {
	case error:
		return p.Error()
	case string:
		return p
	default:
		return fmt.Sprintf("%v", p)
	}
}

// LoggingMiddleware returns a middleware that logs command invocations.
// Successful calls are logged at debug level, failures at warn with the
// error category.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next RunFunc) RunFunc {
		return func(ctx context.Context, req *Request) (entities.Value, error) {
			name := commandName(ctx)
			start := time.Now()

			logger.DebugContext(ctx, "invoking command", "command", name, "args", len(req.Call.Positional))
			v, err := next(ctx, req)
			if err != nil {
				logger.WarnContext(ctx, "command failed",
					"command", name,
					"error", err,
					"type", errors.ToErrorDetail(err).Type,
					"duration", time.Since(start),
				)
				return v, err
			}
			logger.DebugContext(ctx, "command completed",
				"command", name,
				"result", v.TypeName(),
				"duration", time.Since(start),
			)
			return v, nil
		}
	}
}

func commandName(ctx context.Context) string {
	if cc, ok := ctx.(CallContext); ok {
		return cc.CommandName()
	}
	return "unknown"
}
