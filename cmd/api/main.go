package main

import (
	"log"
	"os"

	"foliotrack/cmd"
)

func main() {
	apiHandler, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}

	if cronSpec := os.Getenv("FOLIO_REFRESH_CRON"); cronSpec != "" {
		if _, err := apiHandler.RefreshHandler.StartSchedule(cronSpec); err != nil {
			log.Fatal(err)
		}
	}

	err = apiHandler.StartApi(3009)
	if err != nil {
		log.Fatal(err)
	}
}
