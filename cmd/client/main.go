package main

import (
	"context"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/mymemory/internal/client/app"
	"github.com/dmitrijs2005/mymemory/internal/client/config"
	"github.com/dmitrijs2005/mymemory/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger, err := logging.NewTextLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}
	runLog := logger.With("run_id", uuid.NewString())

	a, err := app.NewApp(ctx, cfg, runLog)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	a.Run(ctx)

}
