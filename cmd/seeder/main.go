package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/worklyapp/workly-backend/internal/bootstrap"
	"github.com/worklyapp/workly-backend/internal/config"
	"github.com/worklyapp/workly-backend/internal/database"
	"github.com/worklyapp/workly-backend/internal/repository"
)

func main() {
	action := flag.String("action", "seed", "Action to perform: seed, clear")
	fixturePath := flag.String("fixture", "cmd/seeder/fixtures/demo.yaml", "Path to the YAML fixture")
	flag.Parse()

	ctx := context.Background()

	app := bootstrap.NewApp()
	if err := app.Initialize(ctx); err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}
	defer app.DB.Close()

	var indexer *database.ShiftIndexer
	if url := config.DefaultEnvConfig.ELASTIC_URL; url != "" {
		si, err := database.NewShiftIndexer(url)
		if err != nil {
			log.Printf("search index unavailable, skipping shift mirroring: %v", err)
		} else {
			indexer = si
		}
	}

	seeder := database.NewDataSeeder(
		app.DB,
		repository.NewUserRepository(app.DB),
		repository.NewCompanyRepository(app.DB),
		repository.NewTimeRecordRepository(app.DB),
		indexer,
	)

	switch *action {
	case "seed":
		fixture, err := database.LoadSeedFixture(*fixturePath)
		if err != nil {
			log.Fatal(err)
		}
		if err := seeder.Seed(ctx, fixture); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}

	case "clear":
		fmt.Println("This will delete all data. Continue? (yes/no):")
		var response string
		fmt.Scanln(&response)
		if response != "yes" {
			fmt.Println("Cancelled.")
			return
		}
		if err := seeder.Clear(ctx); err != nil {
			log.Fatalf("clear failed: %v", err)
		}

	default:
		fmt.Printf("unknown action: %s\n", *action)
		flag.PrintDefaults()
	}
}
