package main

import (
	"kebiao-backend/cmd/kebiao-cli/commands"
	"kebiao-backend/lib/osutil"
)

func main() {
	commands.ExecuteContext(osutil.SignalContext())
}
