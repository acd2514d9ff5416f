package main

import (
	"context"
	"log"
	"time"

	"livelabs-be/internal/bootstrap"
	"livelabs-be/internal/config"
	"livelabs-be/pkg/database"

	"github.com/fatih/color"
)

// One-shot lifecycle sweep, intended for cron. The notification consumer is
// started first so outdated/deleted mails drain before exit.
func main() {
	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	ctx := context.Background()
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Printf("Warn: notification consumer failed to start: %v", err)
	}

	start := time.Now()
	res, err := container.LifecycleService.Sweep(ctx)
	if err != nil {
		color.Red("Sweep failed: %v", err)
		log.Fatal(err)
	}

	// Give in-flight notification messages a moment to drain.
	time.Sleep(2 * time.Second)

	color.Green("Sweep completed in %s", time.Since(start).Round(time.Millisecond))
	color.Yellow("  outdated: %d (notified %d)", res.Outdated, res.Notified)
	color.Red("  deleted:  %d", res.Deleted)
}
