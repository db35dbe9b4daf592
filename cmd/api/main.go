package main

import (
	"context"
	"log"

	"github.com/project-budget/go-budget-backend/config"
	"github.com/project-budget/go-budget-backend/internal/bootstrap"
	"github.com/project-budget/go-budget-backend/internal/budget/repository"
	"github.com/project-budget/go-budget-backend/internal/budget/seed"
	"github.com/project-budget/go-budget-backend/internal/budget/service"
	"github.com/project-budget/go-budget-backend/internal/currency"
	"github.com/project-budget/go-budget-backend/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()

	eng, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("open storage engine: %v", err)
	}
	defer eng.Close()

	if err := storage.EnsureSchema(ctx, eng); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	if cfg.App.Environment == "test" {
		n, err := seed.Reset(ctx, eng, cfg.App.SeedFile)
		if err != nil {
			log.Printf("seed load failed: %v", err)
		} else {
			log.Printf("seeded %d projects from %s", n, cfg.App.SeedFile)
		}
	}

	repo := repository.New(eng)
	svc := service.New(repo, currency.New(cfg.Currency))

	bootstrap.SetGinMode(cfg)
	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "budget-backend",
		Version:     cfg.App.Version,
		Engine:      eng,
		Service:     svc,
	})

	log.Printf("listening on :%s (env=%q)", cfg.Server.Port, cfg.App.Environment)
	log.Fatal(r.Run(":" + cfg.Server.Port))
}
