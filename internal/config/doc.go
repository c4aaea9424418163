// Package config defines the settings shared by the alarm binaries and
// provides helpers to load, validate and save them in YAML format.
//
// Config holds the gRPC server address, call timeout, logging options and
// the device storage the alarm collection is persisted in.
package config
