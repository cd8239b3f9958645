package main

import "github.com/oshokin/alarm-agenda/cmd/alarm-agenda/cmd"

func main() {
	cmd.Execute()
}
