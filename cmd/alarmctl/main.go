package main

import "github.com/oshokin/alarm-manager/cmd/alarmctl/cmd"

func main() {
	cmd.Execute()
}
