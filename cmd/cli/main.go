package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/washstore/internal/buildinfo"
	"github.com/dmitrijs2005/washstore/internal/client/cli"
	"github.com/dmitrijs2005/washstore/internal/client/config"
)

func main() {

	buildinfo.PrintBanner(os.Stdout, "washstore")
	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
