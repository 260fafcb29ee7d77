package main

import (
	"context"
	"log"

	"foliotrack/cmd"
	"foliotrack/internal/logger"
	"foliotrack/internal/util"
)

// prints a one-shot valuation + analytics snapshot of the stored
// portfolio; handy for poking at the engine without the api
func main() {
	apiHandler, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}

	ctx := logger.AddToContext(context.Background(), apiHandler.Logger)

	apiHandler.RefreshHandler.Mu.Lock()
	defer apiHandler.RefreshHandler.Mu.Unlock()

	result, err := apiHandler.RefreshHandler.Refresh(ctx)
	if err != nil {
		log.Fatal(err)
	}

	util.Pprint(result.Positions)
	util.Pprint(result.Analytics)
}
