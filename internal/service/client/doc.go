// Package client implements the alarmctl commands.
//
// Commands run either against the local storage directly or against a running
// alarm server, and print results in the form the alarm list screen shows them.
package client
