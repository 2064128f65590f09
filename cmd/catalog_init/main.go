// Command catalog_init prepares the MOI analytics catalog that daily entries
// are synced into: a database, the users and daily_entries tables and a
// small NL2SQL glossary. Re-running it skips what already exists.
package main

import (
	"context"
	"flag"
	"log"

	"leadership-dashboard/internal/config"
	"leadership-dashboard/internal/logger"

	sdk "github.com/matrixorigin/moi-go-sdk"
)

func main() {
	configFile := flag.String("config", "etc/config-dev.yaml", "config file")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		logger.Warn("dotenv load failed", "err", err)
	}
	logger.Init(config.LogConfig{Level: "info", Console: true})

	cfg := config.Load(*configFile)
	client, err := cfg.NewRawClient()
	if err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()
	catalogID := sdk.CatalogID(cfg.MOI.CatalogID)
	if catalogID == 0 {
		catalogID = 1
	}

	ids, err := initCatalog(ctx, client, catalogID, cfg.Database.Name)
	if err != nil {
		log.Fatal("catalog init failed: ", err)
	}
	// These go into moi.database_id, moi.daily_entries_table and moi.users_table.
	logger.Info("catalog ready", "database_id", ids.Database, "daily_entries_table", ids.DailyEntries, "users_table", ids.Users)

	if err := initKnowledge(ctx, client); err != nil {
		log.Fatal("knowledge init failed: ", err)
	}
	logger.Info("=== all done ===")
}
