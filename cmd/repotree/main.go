package main

import (
	"fmt"
	"os"

	"github.com/mbisign/repotree/internal/cli"
	"github.com/mbisign/repotree/internal/utils"
)

// main is the entry point for the repotree command.
func main() {
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger()
	if loggerInitializationError != nil {
		panic(fmt.Errorf("initializing logger: %w", loggerInitializationError))
	}
	defer func() { _ = loggerInstance.Sync() }()
	if applicationExecutionError := cli.Execute(loggerInstance); applicationExecutionError != nil {
		loggerInstance.Error("Error: " + applicationExecutionError.Error())
		os.Exit(1)
	}
}
