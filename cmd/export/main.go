package main

import (
	"context"
	"flag"
	"log"

	"livelabs-be/internal/bootstrap"
	"livelabs-be/internal/config"
	"livelabs-be/pkg/database"

	"github.com/fatih/color"
)

func main() {
	siteId := flag.String("site", "", "site id to export")
	period := flag.String("period", "", "name of the closed test period")
	flag.Parse()

	if *siteId == "" || *period == "" {
		log.Fatal("Usage: export -site <site_id> -period <period_name>")
	}

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	res, err := container.ExportService.ExportPeriod(context.Background(), *siteId, *period)
	if err != nil {
		color.Red("Export failed: %v", err)
		log.Fatal(err)
	}

	color.Green("Exported period %q for site %s:", res.Period, *siteId)
	for _, name := range res.Artifacts {
		color.Cyan("  %s", name)
	}
}
