package alarm

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	domain "github.com/oshokin/alarm-manager/internal/domain/alarm"
)

// dialBufconn serves s over an in-memory listener and returns a client stub.
func dialBufconn(t *testing.T, s *Server) *AlarmServiceClient {
	t.Helper()

	listener := bufconn.Listen(1 << 20)
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(LoggingInterceptor(context.Background())))
	RegisterAlarmServiceServer(grpcServer, s)

	go func() {
		_ = grpcServer.Serve(listener)
	}()

	conn, err := grpc.NewClient(
		"passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()

		grpcServer.Stop()
	})

	return NewAlarmServiceClient(conn)
}

// TestServiceDesc_OverTheWire exercises every method through a real gRPC connection.
func TestServiceDesc_OverTheWire(t *testing.T) {
	t.Parallel()

	client := dialBufconn(t, newTestServer(t))
	ctx := metadata.AppendToOutgoingContext(context.Background(), ActorMetadataKey, "tester@host")

	created, err := client.CreateAlarm(ctx, mustStruct(t, map[string]any{FieldTime: "10:30"}))
	require.NoError(t, err)

	id := created.GetFields()[FieldID].GetStringValue()
	require.NotEmpty(t, id)

	list, err := client.ListAlarms(ctx, new(emptypb.Empty))
	require.NoError(t, err)
	require.Len(t, list.GetValues(), 1)

	_, err = client.SaveAlarm(ctx, mustStruct(t, map[string]any{
		FieldID:            id,
		FieldTime:          "12:23",
		FieldEnabled:       true,
		FieldRecurringDays: nil,
	}))
	require.NoError(t, err)

	_, err = client.SetAlarmEnabled(ctx, EnabledToStruct(id, false))
	require.NoError(t, err)

	edited, err := client.EditAlarm(ctx, mustStruct(t, map[string]any{FieldID: id, FieldTime: "06:00"}))
	require.NoError(t, err)

	alarm, err := FromStruct(edited)
	require.NoError(t, err)
	require.Equal(t, domain.MustTimeOfDay(6, 0), alarm.Time)
	require.False(t, alarm.Enabled)

	got, err := client.GetAlarm(ctx, wrapperspb.String(id))
	require.NoError(t, err)
	require.Equal(t, "06:00", got.GetFields()[FieldTime].GetStringValue())

	_, err = client.DeleteAlarm(ctx, wrapperspb.String(id))
	require.NoError(t, err)

	_, err = client.GetAlarm(ctx, wrapperspb.String(id))
	require.Equal(t, codes.NotFound, status.Code(err))
}

// TestActorFromContext verifies the actor is read from incoming metadata.
func TestActorFromContext(t *testing.T) {
	t.Parallel()

	require.Empty(t, ActorFromContext(context.Background()))

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(ActorMetadataKey, "o.shokin@office"))
	require.Equal(t, "o.shokin@office", ActorFromContext(ctx))
}
