package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"sales_manager/console"
	"sales_manager/internal/app"
	"sales_manager/internal/clock"
	"sales_manager/internal/config"
	"sales_manager/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Development(), cfg.LogFile)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	state, err := app.New(cfg, clock.Real{}, log)
	if err != nil {
		return fmt.Errorf("failed to initialize state: %w", err)
	}

	return console.New(state, os.Stdin, os.Stdout, cfg, log).Run()
}
