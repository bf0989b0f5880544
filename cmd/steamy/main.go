package main

import (
	"steamy/cmd/steamy/commands"
	"steamy/lib/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
