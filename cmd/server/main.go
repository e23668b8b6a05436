package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/assocportal/internal/buildinfo"
	"github.com/dmitrijs2005/assocportal/internal/logging"
	"github.com/dmitrijs2005/assocportal/internal/server"
	"github.com/dmitrijs2005/assocportal/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(cfg.LogLevel), false)

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Printf("%v", err)
		return
	}
	defer app.Close()

	app.Run(ctx)
}
