package main

import (
	"log"
	"os"

	"github.com/custodia-labs/portalsync/internal/adapters/driven/auth"
	"github.com/custodia-labs/portalsync/internal/adapters/driven/graph"
	"github.com/custodia-labs/portalsync/internal/adapters/driven/postgres"
	"github.com/custodia-labs/portalsync/internal/adapters/driving/cli"
	"github.com/custodia-labs/portalsync/internal/config"
	"github.com/custodia-labs/portalsync/internal/core/domain"
	"github.com/custodia-labs/portalsync/internal/core/services"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cli.SetVersion(version)

	// PORTALSYNC_CONFIG overrides the default ~/.portalsync/config.toml.
	cfg, err := config.Load(os.Getenv("PORTALSYNC_CONFIG"))
	if err != nil {
		log.Printf("failed to load configuration: %v", err)
		return 1
	}

	tokens := auth.NewClientCredentials(cfg.TenantID, cfg.ClientID, cfg.ClientSecret)
	store := graph.NewClient(cfg.Connection.ID)
	records := postgres.NewFactory(postgres.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		Name:     cfg.Database.Name,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
	})

	connection := domain.Connection{
		ID:          cfg.Connection.ID,
		Name:        cfg.Connection.Name,
		Description: cfg.Connection.Description,
	}

	provisioner := services.NewProvisioner(tokens, store, connection)
	registrar := services.NewSchemaRegistrar(tokens, store, domain.DefaultSchema())
	transformer := services.NewTransformer(cfg.AppBaseURL)
	orchestrator := services.NewSyncOrchestrator(tokens, store, records, transformer)

	cli.SetServices(&cli.Services{
		Provisioner: provisioner,
		Registrar:   registrar,
		Sync:        orchestrator,
	})
	cli.SetSchemaWaitDefaults(cfg.Schema.MaxWait, cfg.Schema.PollInterval)

	if err := cli.Execute(); err != nil {
		return 1
	}
	return 0
}
