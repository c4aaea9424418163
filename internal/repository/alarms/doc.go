// Package alarms implements the Alarm Store: persistence of the whole alarm
// collection as a single JSON array under one key of a kv.Storage.
//
// Reads never fail for "no data yet" and by-id lookups report misses as a
// normal result. Every mutating operation is a read-modify-write of the full
// blob performed under a single writer lock, so concurrent updates to
// different alarms cannot overwrite each other.
package alarms
