package main

import (
	"fmt"

	log "github.com/charmbracelet/log"
	"github.com/securebank/ledger/infra/initializer"
	"github.com/securebank/ledger/pkg/config"
	"github.com/securebank/ledger/webapi"
)

// @title SecureBank Ledger API
// @version 1.0.0
// @description Account and transaction ledger API
// @host localhost:3000
// @BasePath /
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description "Enter your Bearer token in the format: `Bearer {token}`"
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	app := webapi.New(deps.Services, cfg, deps.Logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	deps.Logger.Info("starting server", "env", cfg.Env, "address", addr)

	return app.Listen(addr)
}
