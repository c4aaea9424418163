// Package manager implements the alarm operations exposed to the list
// screen: listing, creation, full and partial edits, the enable toggle and
// deletion, on top of the alarm store and editing sessions.
package manager
