package alarm

import (
	"context"
	"maps"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	domain "github.com/oshokin/alarm-manager/internal/domain/alarm"
	"github.com/oshokin/alarm-manager/internal/service/editor"
)

// Service abstracts the business operations the transport layer depends on.
type Service interface {
	List(ctx context.Context) ([]domain.Alarm, error)
	Get(ctx context.Context, id string) (domain.Alarm, bool, error)
	Create(ctx context.Context, alarm domain.Alarm) (domain.Alarm, error)
	Save(ctx context.Context, alarm domain.Alarm) (domain.Alarm, error)
	Edit(ctx context.Context, id string, changes editor.Changes) (domain.Alarm, error)
	SetEnabled(ctx context.Context, id string, enabled bool) (domain.Alarm, error)
	Delete(ctx context.Context, id string) error
}

// Server implements the AlarmService gRPC API.
type Server struct {
	// service provides the business logic for alarm operations.
	service Service
}

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// ListAlarms returns every alarm.
func (s *Server) ListAlarms(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	alarms, err := s.service.List(ctx)
	if err != nil {
		return nil, StatusFromError(err)
	}

	list, err := ToList(alarms)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return list, nil
}

// GetAlarm returns one alarm or NotFound. An empty id is never found.
func (s *Server) GetAlarm(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	alarm, found, err := s.service.Get(ctx, req.GetValue())
	if err != nil {
		return nil, StatusFromError(err)
	}

	if !found {
		return nil, status.Errorf(codes.NotFound, "alarm %s not found", req.GetValue())
	}

	return respond(alarm)
}

// CreateAlarm creates an alarm. A missing id is generated and a missing
// enabled flag defaults to true; time is required.
func (s *Server) CreateAlarm(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := maps.Clone(req.GetFields())
	if fields == nil {
		fields = make(map[string]*structpb.Value, 1)
	}

	if _, ok := fields[FieldEnabled]; !ok {
		fields[FieldEnabled] = structpb.NewBoolValue(true)
	}

	alarm, err := FromStruct(&structpb.Struct{Fields: fields})
	if err != nil {
		return nil, StatusFromError(err)
	}

	created, err := s.service.Create(ctx, alarm)
	if err != nil {
		return nil, StatusFromError(err)
	}

	return respond(created)
}

// SaveAlarm replaces the alarm with the same id. Every field is required.
func (s *Server) SaveAlarm(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	alarm, err := FromStruct(req)
	if err != nil {
		return nil, StatusFromError(err)
	}

	saved, err := s.service.Save(ctx, alarm)
	if err != nil {
		return nil, StatusFromError(err)
	}

	return respond(saved)
}

// EditAlarm applies the fields present in the request to the stored alarm.
func (s *Server) EditAlarm(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, changes, err := ChangesFromStruct(req)
	if err != nil {
		return nil, StatusFromError(err)
	}

	edited, err := s.service.Edit(ctx, id, changes)
	if err != nil {
		return nil, StatusFromError(err)
	}

	return respond(edited)
}

// SetAlarmEnabled switches an alarm on or off.
func (s *Server) SetAlarmEnabled(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, enabled, err := EnabledFromStruct(req)
	if err != nil {
		return nil, StatusFromError(err)
	}

	updated, err := s.service.SetEnabled(ctx, id, enabled)
	if err != nil {
		return nil, StatusFromError(err)
	}

	return respond(updated)
}

// DeleteAlarm removes an alarm.
func (s *Server) DeleteAlarm(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	if err := s.service.Delete(ctx, req.GetValue()); err != nil {
		return nil, StatusFromError(err)
	}

	return new(emptypb.Empty), nil
}

func respond(alarm domain.Alarm) (*structpb.Struct, error) {
	message, err := ToStruct(alarm)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return message, nil
}
