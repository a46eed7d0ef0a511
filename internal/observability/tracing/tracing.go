package tracing

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InjectTraceID attaches a logger tagged with a fresh trace id to ctx.
func InjectTraceID(ctx context.Context) context.Context {
	logger := contextLogger(ctx).With().Str("traceId", uuid.NewString()).Logger()
	return logger.WithContext(ctx)
}

// InjectCommand tags the context logger with the command being settled.
func InjectCommand(ctx context.Context, commandID, commandType string) context.Context {
	logger := contextLogger(ctx).With().
		Str("commandId", commandID).
		Str("commandType", commandType).
		Logger()
	return logger.WithContext(ctx)
}

func contextLogger(ctx context.Context) zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return *l
	}
	return log.Logger
}
