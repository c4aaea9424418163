package alarm

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "alarmmanager.v1.AlarmService"

// Method names.
const (
	MethodListAlarms      = "ListAlarms"
	MethodGetAlarm        = "GetAlarm"
	MethodCreateAlarm     = "CreateAlarm"
	MethodSaveAlarm       = "SaveAlarm"
	MethodEditAlarm       = "EditAlarm"
	MethodSetAlarmEnabled = "SetAlarmEnabled"
	MethodDeleteAlarm     = "DeleteAlarm"
)

// AlarmServiceServer is the server API for the AlarmService.
type AlarmServiceServer interface {
	ListAlarms(ctx context.Context, req *emptypb.Empty) (*structpb.ListValue, error)
	GetAlarm(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error)
	CreateAlarm(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	SaveAlarm(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	EditAlarm(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	SetAlarmEnabled(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	DeleteAlarm(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error)
}

// FullMethod returns the "/service/method" path of a method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// ServiceDesc describes the AlarmService for grpc.Server registration.
//
//nolint:gochecknoglobals // grpc.ServiceRegistrar takes a descriptor pointer.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AlarmServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodListAlarms, AlarmServiceServer.ListAlarms),
		unary(MethodGetAlarm, AlarmServiceServer.GetAlarm),
		unary(MethodCreateAlarm, AlarmServiceServer.CreateAlarm),
		unary(MethodSaveAlarm, AlarmServiceServer.SaveAlarm),
		unary(MethodEditAlarm, AlarmServiceServer.EditAlarm),
		unary(MethodSetAlarmEnabled, AlarmServiceServer.SetAlarmEnabled),
		unary(MethodDeleteAlarm, AlarmServiceServer.DeleteAlarm),
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterAlarmServiceServer registers srv on the provided registrar.
func RegisterAlarmServiceServer(registrar grpc.ServiceRegistrar, srv AlarmServiceServer) {
	registrar.RegisterService(&ServiceDesc, srv)
}

// unary builds a method descriptor; a fresh request is allocated per call.
func unary[M any, Resp any](
	method string,
	call func(AlarmServiceServer, context.Context, *M) (Resp, error),
) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(
			srv any,
			ctx context.Context,
			dec func(any) error,
			interceptor grpc.UnaryServerInterceptor,
		) (any, error) {
			in := new(M)
			if err := dec(in); err != nil {
				return nil, err
			}

			if interceptor == nil {
				return call(srv.(AlarmServiceServer), ctx, in) //nolint:forcetypeassert // Guaranteed by HandlerType.
			}

			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(method),
			}

			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(AlarmServiceServer), ctx, req.(*M)) //nolint:forcetypeassert // Guaranteed by HandlerType.
			}

			return interceptor(ctx, in, info, handler)
		},
	}
}

// AlarmServiceClient is the client API for the AlarmService.
type AlarmServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewAlarmServiceClient creates a client stub on the provided connection.
func NewAlarmServiceClient(cc grpc.ClientConnInterface) *AlarmServiceClient {
	return &AlarmServiceClient{cc: cc}
}

// ListAlarms returns every alarm as a list of Struct values.
func (c *AlarmServiceClient) ListAlarms(
	ctx context.Context,
	in *emptypb.Empty,
	opts ...grpc.CallOption,
) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, FullMethod(MethodListAlarms), in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

// GetAlarm returns one alarm by id.
func (c *AlarmServiceClient) GetAlarm(
	ctx context.Context,
	in *wrapperspb.StringValue,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return invokeStruct(ctx, c.cc, MethodGetAlarm, in, opts...)
}

// CreateAlarm creates an alarm.
func (c *AlarmServiceClient) CreateAlarm(
	ctx context.Context,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return invokeStruct(ctx, c.cc, MethodCreateAlarm, in, opts...)
}

// SaveAlarm replaces an alarm by id.
func (c *AlarmServiceClient) SaveAlarm(
	ctx context.Context,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return invokeStruct(ctx, c.cc, MethodSaveAlarm, in, opts...)
}

// EditAlarm applies a partial edit.
func (c *AlarmServiceClient) EditAlarm(
	ctx context.Context,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return invokeStruct(ctx, c.cc, MethodEditAlarm, in, opts...)
}

// SetAlarmEnabled switches an alarm on or off.
func (c *AlarmServiceClient) SetAlarmEnabled(
	ctx context.Context,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return invokeStruct(ctx, c.cc, MethodSetAlarmEnabled, in, opts...)
}

// DeleteAlarm removes an alarm by id.
func (c *AlarmServiceClient) DeleteAlarm(
	ctx context.Context,
	in *wrapperspb.StringValue,
	opts ...grpc.CallOption,
) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, FullMethod(MethodDeleteAlarm), in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func invokeStruct(
	ctx context.Context,
	cc grpc.ClientConnInterface,
	method string,
	in any,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}
