package main

import (
	"context"
	"log"
	"time"

	"livelabs-be/internal/bootstrap"
	"livelabs-be/internal/config"
	"livelabs-be/internal/server"
	"livelabs-be/internal/tracer"
	"livelabs-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
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

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Notification Consumer...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	if cfg.Challenge.SweepIntervalHours > 0 {
		go func() {
			interval := time.Duration(cfg.Challenge.SweepIntervalHours) * time.Hour
			log.Printf("Background: Lifecycle sweep every %s", interval)
			for {
				time.Sleep(interval)
				if _, err := container.LifecycleService.Sweep(context.Background()); err != nil {
					log.Printf("Background Sweep Error: %v", err)
				}
			}
		}()
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
