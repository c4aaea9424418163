//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"fmt"

	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"

	api "github.com/oshokin/alarm-manager/internal/api/grpc/alarm"
	domain "github.com/oshokin/alarm-manager/internal/domain/alarm"
)

// alarmMessage is the response type of every single-alarm RPC.
type alarmMessage = *structpb.Struct

// callAlarm runs a single-alarm RPC within the call timeout and decodes its response.
func (c *Client) callAlarm(
	ctx context.Context,
	operation string,
	call func(context.Context) (alarmMessage, error),
) (domain.Alarm, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := call(callCtx)
	if err != nil {
		return domain.Alarm{}, fmt.Errorf("%s: %w", operation, api.ErrorFromStatus(err))
	}

	return api.FromStruct(resp)
}

// callContext returns a context with the client's call timeout if configured,
// otherwise a cancellable child context without a deadline. The actor, when
// known, is attached as outgoing metadata.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.actor != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, api.ActorMetadataKey, c.actor)
	}

	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}
