// Package alarm implements the gRPC transport for alarm management.
//
// The AlarmService is described by hand with protobuf well-known types as
// messages: alarms travel as google.protobuf.Struct values whose JSON form
// equals the persisted alarm JSON. The package provides the service
// descriptor, a typed client stub, conversion helpers and a Server adapting a
// business-service interface.
package alarm
