package main

import (
	"ezodus-market/cmd/market/commands"
	"ezodus-market/internal/components/serviceutil"
	"ezodus-market/internal/pipeline"
)

func main() {
	pipeline.LoadDotEnv()
	commands.ExecuteContext(serviceutil.SignalContext())
}
