package main

import (
	"os"

	_ "stackforge/cmd"
	"stackforge/cmd/root"
	"stackforge/internal/config"
	"stackforge/internal/logger"
)

func main() {
	// Server mode additionally mirrors log output to the console
	isServerMode := len(os.Args) > 1 && os.Args[1] == "server"

	logger.InitLoggerWithMode(&config.Config.Log, isServerMode)

	if err := root.RootCmd.Execute(); err != nil {
		logger.Fatal(err)
	}
	os.Exit(0)
}
