package main

import (
	"context"
	"log"
	"os"
	"time"

	"livelabs-be/internal/entity"
	"livelabs-be/internal/repository/unitofwork"
	"livelabs-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Seeds a demo site, a verified participant and a pair of train queries with
// a small doclist, enough to exercise the full submit/serve/feedback loop
// locally.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	cfgDSN := mustEnvDSN()
	db, err := database.NewGormDBFromDSN(cfgDSN)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)
	now := time.Now()

	site := entity.Site{
		Id:        "demosite",
		Name:      "Demo Site",
		ApiKey:    "demo-site-key",
		Enabled:   true,
		CreatedAt: now,
	}
	if existing, _ := uow.SiteRepository().FindByID(ctx, site.Id); existing == nil {
		if err := uow.SiteRepository().Create(ctx, &site); err != nil {
			log.Fatalf("Error: failed to seed site: %v", err)
		}
	}

	participant := entity.Participant{
		Id:         uuid.New(),
		TeamName:   "Demo Team",
		Email:      "team@example.org",
		ApiKey:     "demo-participant-key",
		IsVerified: true,
		SiteIds:    []string{site.Id},
		CreatedAt:  now,
	}
	if existing, _ := uow.ParticipantRepository().FindByApiKey(ctx, participant.ApiKey); existing == nil {
		if err := uow.ParticipantRepository().Create(ctx, &participant); err != nil {
			log.Fatalf("Error: failed to seed participant: %v", err)
		}
	}

	docIds := make([]string, 0, 4)
	for _, sdid := range []string{"d001", "d002", "d003", "d004"} {
		id := uuid.NewString()
		if err := uow.DocumentRepository().Create(ctx, &entity.Document{
			Id:        id,
			SiteId:    site.Id,
			SiteDocId: sdid,
			Title:     "Seed document " + sdid,
			CreatedAt: now,
		}); err != nil {
			log.Fatalf("Error: failed to seed document %s: %v", sdid, err)
		}
		docIds = append(docIds, id)
	}

	for _, sq := range []string{"q001", "q002"} {
		query := entity.Query{
			Id:        uuid.NewString(),
			SiteId:    site.Id,
			SiteQid:   sq,
			QStr:      "demo query " + sq,
			Type:      entity.QueryTypeTrain,
			CreatedAt: now,
		}
		if err := uow.QueryRepository().Create(ctx, &query); err != nil {
			log.Fatalf("Error: failed to seed query %s: %v", sq, err)
		}
	}

	color.Green("✅ Seeded site %q (key %s)", site.Id, site.ApiKey)
	color.Green("✅ Seeded participant %q (key %s)", participant.TeamName, participant.ApiKey)
	color.Cyan("   %d documents, 2 train queries", len(docIds))
}

func mustEnvDSN() string {
	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}
	return dsn
}
