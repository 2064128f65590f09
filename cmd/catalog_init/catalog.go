package main

import (
	"context"
	"fmt"
	"strings"

	"leadership-dashboard/internal/logger"
	"leadership-dashboard/internal/service"

	sdk "github.com/matrixorigin/moi-go-sdk"
)

type catalogTable struct {
	name    string
	comment string
	columns []sdk.Column
}

// catalogTables mirrors the column order the sync writes its CSV rows in.
var catalogTables = []catalogTable{
	{"users", "Berater und Führungskräfte", []sdk.Column{
		{Name: "id", Type: "BIGINT", IsPk: true, Comment: "Primärschlüssel"},
		{Name: "email", Type: "VARCHAR(255)", Comment: "Login-E-Mail"},
		{Name: "name", Type: "VARCHAR(100)", Comment: "Vor- und Nachname"},
		{Name: "role", Type: "VARCHAR(20)", Comment: "advisor, trainee, sub_leader, top_leader oder admin"},
		{Name: "team_id", Type: "BIGINT", Comment: "Team des Nutzers"},
		{Name: "parent_leader_id", Type: "BIGINT", Comment: "users.id der direkten Führungskraft"},
	}},
	{"daily_entries", "Tägliche Aktivitätszahlen", []sdk.Column{
		{Name: "id", Type: "BIGINT", IsPk: true, Comment: "Primärschlüssel"},
		{Name: "user_id", Type: "BIGINT", Comment: "users.id"},
		{Name: "entry_date", Type: "DATE", Comment: "Tag des Eintrags"},
		{Name: "fa", Type: "INT", Comment: "Finanzanalysen"},
		{Name: "eh", Type: "INT", Comment: "Einheiten"},
		{Name: "new_appointments", Type: "INT", Comment: "neu vereinbarte Termine"},
		{Name: "recommendations", Type: "INT", Comment: "erhaltene Empfehlungen"},
		{Name: "tiv_invitations", Type: "INT", Comment: "Einladungen zur TIV"},
		{Name: "taa_invitations", Type: "INT", Comment: "Einladungen zur TAA"},
		{Name: "tgs_registrations", Type: "INT", Comment: "Anmeldungen zur TGS"},
		{Name: "bav_checks", Type: "INT", Comment: "bAV-Checks"},
		{Name: "updated_at", Type: "DATETIME", Comment: "letzte Änderung"},
	}},
}

func initCatalog(ctx context.Context, client *sdk.RawClient, catalogID sdk.CatalogID, dbName string) (service.CatalogTables, error) {
	var ids service.CatalogTables
	dbResp, err := client.CreateDatabase(ctx, &sdk.DatabaseCreateRequest{
		CatalogID:    catalogID,
		DatabaseName: dbName,
		Comment:      "Leadership Dashboard",
	})
	if err != nil {
		if !isDuplicate(err) {
			return ids, fmt.Errorf("create database: %w", err)
		}
		logger.Info("catalog: database already exists, discovering ID", "name", dbName)
		if ids.Database, err = discoverDatabaseID(ctx, client, catalogID, dbName); err != nil {
			return ids, err
		}
	} else {
		ids.Database = dbResp.DatabaseID
		logger.Info("catalog: database created", "id", ids.Database)
	}

	for _, t := range catalogTables {
		resp, err := client.CreateTable(ctx, &sdk.TableCreateRequest{
			DatabaseID: ids.Database,
			Name:       t.name,
			Columns:    t.columns,
			Comment:    t.comment,
		})
		if err != nil {
			if isDuplicate(err) {
				logger.Info("catalog: table already exists, skipping", "name", t.name)
				continue
			}
			return ids, fmt.Errorf("create table %s: %w", t.name, err)
		}
		logger.Info("catalog: table created", "name", t.name, "id", resp.TableID)
		switch t.name {
		case "users":
			ids.Users = sdk.TableID(resp.TableID)
		case "daily_entries":
			ids.DailyEntries = sdk.TableID(resp.TableID)
		}
	}
	return ids, nil
}

func discoverDatabaseID(ctx context.Context, client *sdk.RawClient, catalogID sdk.CatalogID, dbName string) (sdk.DatabaseID, error) {
	resp, err := client.ListDatabases(ctx, &sdk.DatabaseListRequest{CatalogID: catalogID})
	if err != nil {
		return 0, fmt.Errorf("list databases: %w", err)
	}
	for _, db := range resp.List {
		if db.DatabaseName == dbName {
			logger.Info("catalog: database discovered", "id", db.DatabaseID)
			return db.DatabaseID, nil
		}
	}
	return 0, fmt.Errorf("database %s not found in catalog %d", dbName, catalogID)
}

func isDuplicate(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate") || strings.Contains(s, "already exist") || strings.Contains(s, "conflict")
}
