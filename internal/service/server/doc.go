// Package server runs the alarm gRPC server: it loads settings, opens the
// configured device storage and serves the alarm store until the context is
// canceled.
package server
