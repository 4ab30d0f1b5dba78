// Package initializer wires configuration, logging, storage and services into
// a runnable application.
package initializer

import (
	"fmt"
	"log/slog"

	"github.com/securebank/ledger/infra/database"
	infrarepo "github.com/securebank/ledger/infra/repository"
	"github.com/securebank/ledger/pkg/config"
	accountsvc "github.com/securebank/ledger/pkg/service/account"
	authsvc "github.com/securebank/ledger/pkg/service/auth"
	txnsvc "github.com/securebank/ledger/pkg/service/transaction"
	"github.com/securebank/ledger/webapi"
	"gorm.io/gorm"
)

// Deps holds every initialized dependency the server needs.
type Deps struct {
	Config   *config.App
	Logger   *slog.Logger
	DB       *gorm.DB
	Services webapi.Services
}

// InitializeDependencies connects storage, runs migrations and builds the
// service layer.
func InitializeDependencies(cfg *config.App) (*Deps, error) {
	logger := SetupLogger(cfg.Log)

	db, err := database.Connect(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	uow := infrarepo.NewUoW(db)
	svcs := webapi.Services{
		Account:     accountsvc.New(uow, cfg.Statement, logger),
		Transaction: txnsvc.New(uow, txnsvc.PolicyFromConfig(cfg.Txn), logger),
		Auth:        authsvc.New(uow, cfg.Jwt, logger),
	}

	return &Deps{Config: cfg, Logger: logger, DB: db, Services: svcs}, nil
}
