package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"sample-data-seeder/internal/cli"
	"sample-data-seeder/internal/shared/logger"

	"github.com/joho/godotenv"
)

func main() {
	log := logger.WithComponent("main")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("Could not load .env file: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		log.Errorf("Seeding failed: %v", err)
		stop()
		os.Exit(1)
	}
}
