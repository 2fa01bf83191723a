package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/reeldesk/internal/buildinfo"
	"github.com/dmitrijs2005/reeldesk/internal/devapi"
	"github.com/dmitrijs2005/reeldesk/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := devapi.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}
	logger := logging.New(os.Stderr, os.Getenv("REELDESK_LOG_LEVEL"))

	app, err := devapi.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}

}
