// Package kv implements the device key-value storage alarms are persisted in.
//
// A Storage maps string keys to opaque byte values. Every Set replaces the
// whole value atomically, so readers observe either the previous or the new
// value in full. FileStorage keeps one file per key, SQLiteStorage one row per
// key, and MemoryStorage keeps values in process memory.
package kv
