// Package editor implements alarm editing sessions.
//
// A Session stages changes to one alarm on a private copy and writes them
// through the alarm store only on Commit; Cancel leaves the stored alarm as
// it was. Toggle flips the enabled flag immediately, without staging.
package editor
