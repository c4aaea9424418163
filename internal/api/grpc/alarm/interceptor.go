package alarm

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/oshokin/alarm-manager/internal/logger"
)

// ActorMetadataKey carries the "user@host" of the caller for audit logging.
const ActorMetadataKey = "x-alarm-actor"

// LoggingInterceptor scopes the context logger to the called method and
// actor, and logs every call's outcome.
func LoggingInterceptor(base context.Context) grpc.UnaryServerInterceptor {
	scoped := logger.FromContext(base)

	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		ctx = logger.ToContext(ctx, scoped)
		ctx = logger.WithKV(ctx, "method", info.FullMethod)

		if actor := ActorFromContext(ctx); actor != "" {
			ctx = logger.WithKV(ctx, "actor", actor)
		}

		started := time.Now()
		resp, err := handler(ctx, req)

		code := status.Code(err)
		if err != nil {
			logger.WarnKV(ctx, "Call failed", "code", code.String(), "error", err, "duration", time.Since(started))
		} else {
			logger.DebugKV(ctx, "Call completed", "duration", time.Since(started))
		}

		return resp, err
	}
}

// ActorFromContext returns the actor sent by the client, if any.
func ActorFromContext(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}

	values := md.Get(ActorMetadataKey)
	if len(values) == 0 {
		return ""
	}

	return values[0]
}
