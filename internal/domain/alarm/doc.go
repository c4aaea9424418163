// Package alarm contains core domain types for alarm management.
//
// It defines Alarm (a user-defined daily alarm), TimeOfDay (an hour/minute
// value without date or timezone) and Weekday (recurrence tags), with Clone
// helpers to avoid leaking internal references.
package alarm
