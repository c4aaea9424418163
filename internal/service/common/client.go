//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	api "github.com/oshokin/alarm-manager/internal/api/grpc/alarm"
	"github.com/oshokin/alarm-manager/internal/config"
	domain "github.com/oshokin/alarm-manager/internal/domain/alarm"
	"github.com/oshokin/alarm-manager/internal/service/editor"
	"github.com/oshokin/alarm-manager/internal/version"
)

// Client wraps the AlarmService stub and speaks domain types.
type Client struct {
	// conn is the underlying gRPC connection to the alarm server.
	conn *grpc.ClientConn
	// api is the AlarmService client stub.
	api *api.AlarmServiceClient

	// callTimeout is the default timeout for individual RPC calls.
	callTimeout time.Duration
	// actor is sent with every call for the server's audit log.
	actor string
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for service calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// WithActor sets the "user@host" identity sent with every call.
func WithActor(actor string) Option {
	return func(c *Client) {
		c.actor = actor
	}
}

// errAddressRequired is returned when a required address value is missing.
var errAddressRequired = errors.New("address must be provided")

// Dial establishes a gRPC connection to the alarm server.
// Note: this uses insecure transport credentials; the server is meant to be
// reached over loopback or a trusted network.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	conn, err := grpc.NewClient(
		address,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUserAgent(version.UserAgent()),
	)
	if err != nil {
		return nil, fmt.Errorf("dial alarm server: %w", err)
	}

	return newClient(conn, opts...), nil
}

func newClient(conn *grpc.ClientConn, opts ...Option) *Client {
	client := &Client{
		conn:        conn,
		api:         api.NewAlarmServiceClient(conn),
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

// List returns every alarm.
func (c *Client) List(ctx context.Context) ([]domain.Alarm, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.ListAlarms(callCtx, new(emptypb.Empty))
	if err != nil {
		return nil, fmt.Errorf("list alarms: %w", api.ErrorFromStatus(err))
	}

	return api.FromList(resp)
}

// Get returns the alarm with id; found is false when the server has none.
func (c *Client) Get(ctx context.Context, id string) (domain.Alarm, bool, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.GetAlarm(callCtx, wrapperspb.String(id))
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.Alarm{}, false, nil
		}

		return domain.Alarm{}, false, fmt.Errorf("get alarm %s: %w", id, api.ErrorFromStatus(err))
	}

	alarm, err := api.FromStruct(resp)
	if err != nil {
		return domain.Alarm{}, false, err
	}

	return alarm, true, nil
}

// Create creates an alarm; the server assigns an id when it is empty.
func (c *Client) Create(ctx context.Context, alarm domain.Alarm) (domain.Alarm, error) {
	req, err := api.ToStruct(alarm)
	if err != nil {
		return domain.Alarm{}, err
	}

	if alarm.ID == "" {
		delete(req.GetFields(), api.FieldID)
	}

	return c.callAlarm(ctx, "create alarm", func(ctx context.Context) (alarmMessage, error) {
		return c.api.CreateAlarm(ctx, req)
	})
}

// Save replaces the alarm with the same id.
func (c *Client) Save(ctx context.Context, alarm domain.Alarm) (domain.Alarm, error) {
	req, err := api.ToStruct(alarm)
	if err != nil {
		return domain.Alarm{}, err
	}

	return c.callAlarm(ctx, "save alarm "+alarm.ID, func(ctx context.Context) (alarmMessage, error) {
		return c.api.SaveAlarm(ctx, req)
	})
}

// Edit applies a partial edit on the server.
func (c *Client) Edit(ctx context.Context, id string, changes editor.Changes) (domain.Alarm, error) {
	req, err := api.ChangesToStruct(id, changes)
	if err != nil {
		return domain.Alarm{}, err
	}

	return c.callAlarm(ctx, "edit alarm "+id, func(ctx context.Context) (alarmMessage, error) {
		return c.api.EditAlarm(ctx, req)
	})
}

// SetEnabled switches the alarm on or off.
func (c *Client) SetEnabled(ctx context.Context, id string, enabled bool) (domain.Alarm, error) {
	req := api.EnabledToStruct(id, enabled)

	return c.callAlarm(ctx, "toggle alarm "+id, func(ctx context.Context) (alarmMessage, error) {
		return c.api.SetAlarmEnabled(ctx, req)
	})
}

// Delete removes the alarm with id.
func (c *Client) Delete(ctx context.Context, id string) error {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	if _, err := c.api.DeleteAlarm(callCtx, wrapperspb.String(id)); err != nil {
		return fmt.Errorf("delete alarm %s: %w", id, api.ErrorFromStatus(err))
	}

	return nil
}
