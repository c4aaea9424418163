// Package common holds helpers shared by several services.
//
// It provides a gRPC client for the alarm server that speaks domain types,
// applies per-call timeouts and tags calls with the current system actor.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
