package main

import "github.com/oshokin/alarm-manager/cmd/alarm-server/cmd"

func main() {
	cmd.Execute()
}
