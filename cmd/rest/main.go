package main

import (
	"context"
	"log"

	"github.com/byndl-mvp/PoC-sub002/internal/bootstrap"
	"github.com/byndl-mvp/PoC-sub002/internal/config"
	"github.com/byndl-mvp/PoC-sub002/internal/server"
	"github.com/byndl-mvp/PoC-sub002/internal/tracer"
	"github.com/byndl-mvp/PoC-sub002/pkg/database"
)

func main() {
	// 0. Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Shutdown(context.Background())

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()
	go container.EventLogService.Start()

	// 5. Initialize and Run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
