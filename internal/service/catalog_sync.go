package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"leadership-dashboard/internal/logger"
	"leadership-dashboard/internal/metrics"
	"leadership-dashboard/internal/model"

	sdk "github.com/matrixorigin/moi-go-sdk"
)

// CatalogTables names the analytics catalog targets.
type CatalogTables struct {
	Database     sdk.DatabaseID
	DailyEntries sdk.TableID
	Users        sdk.TableID
}

// CatalogSync appends written rows to the MOI analytics catalog so they can
// be queried in natural language. Failures are logged and never reach the
// caller.
type CatalogSync struct {
	raw    *sdk.RawClient
	sdk    *sdk.SDKClient
	tables CatalogTables
}

func NewCatalogSync(raw *sdk.RawClient, tables CatalogTables) *CatalogSync {
	return &CatalogSync{raw: raw, sdk: sdk.NewSDKClient(raw), tables: tables}
}

var dailyEntryColumns = []string{
	"id", "user_id", "entry_date",
	"fa", "eh", "new_appointments", "recommendations",
	"tiv_invitations", "taa_invitations", "tgs_registrations", "bav_checks",
	"updated_at",
}

var userColumns = []string{"id", "email", "name", "role", "team_id", "parent_leader_id"}

func (s *CatalogSync) SyncDailyEntries(ctx context.Context, entries []model.DailyEntry) {
	if len(entries) == 0 {
		return
	}
	name := fmt.Sprintf("daily_%d_%d.csv", entries[0].ID, time.Now().UnixNano())
	s.importCSV(ctx, s.tables.DailyEntries, dailyEntriesCSV(entries), name, dailyEntryColumns)
}

func (s *CatalogSync) SyncUsers(ctx context.Context, users []model.User) {
	if len(users) == 0 || s.tables.Users == 0 {
		return
	}
	s.importCSV(ctx, s.tables.Users, usersCSV(users), "users.csv", userColumns)
}

func dailyEntriesCSV(entries []model.DailyEntry) string {
	var buf bytes.Buffer
	for _, e := range entries {
		fmt.Fprintf(&buf, "%d,%d,%s", e.ID, e.UserID, e.EntryDate)
		for _, m := range model.AllMetrics {
			fmt.Fprintf(&buf, ",%d", e.Value(m))
		}
		fmt.Fprintf(&buf, ",%s\n", e.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return buf.String()
}

func usersCSV(users []model.User) string {
	var buf bytes.Buffer
	for _, u := range users {
		fmt.Fprintf(&buf, "%d,%s,%s,%s,%s,%s\n",
			u.ID, esc(u.Email), esc(u.Name), u.Role, optID(u.TeamID), optID(u.ParentLeaderID))
	}
	return buf.String()
}

func mapping(columns []string) []sdk.FileAndTableColumnMapping {
	out := make([]sdk.FileAndTableColumnMapping, 0, len(columns))
	for i, c := range columns {
		out = append(out, sdk.FileAndTableColumnMapping{TableColumn: c, Column: c, ColNumInFile: int32(i + 1)})
	}
	return out
}

func (s *CatalogSync) importCSV(ctx context.Context, tableID sdk.TableID, csv, fileName string, columns []string) {
	resp, err := s.raw.UploadLocalFile(ctx, bytes.NewReader([]byte(csv)), fileName, []sdk.FileMeta{{Filename: fileName, Path: "/"}})
	if err != nil {
		logger.Warn("catalog.upload_failed", "table", tableID, "err", err)
		metrics.CatalogSyncs.WithLabelValues("error").Inc()
		return
	}
	if len(resp.ConnFileIds) == 0 {
		logger.Warn("catalog.no_conn_file_ids", "table", tableID)
		metrics.CatalogSyncs.WithLabelValues("error").Inc()
		return
	}

	_, err = s.sdk.ImportLocalFileToTable(ctx, &sdk.TableConfig{
		ConnFileIDs:      resp.ConnFileIds,
		NewTable:         false,
		DatabaseID:       s.tables.Database,
		TableID:          tableID,
		IsColumnName:     false,
		RowStart:         1,
		Conflict:         1,
		ExistedTable:     mapping(columns),
		ExistedTableOpts: sdk.ExistedTableOptions{Method: sdk.ExistedTableOptionAppend},
	})
	if err != nil {
		logger.Warn("catalog.import_failed", "table", tableID, "err", err)
		metrics.CatalogSyncs.WithLabelValues("error").Inc()
		return
	}
	metrics.CatalogSyncs.WithLabelValues("ok").Inc()
	logger.Info("catalog.sync", "table", tableID, "file", fileName)
}

func optID(id *int64) string {
	if id == nil {
		return ""
	}
	return fmt.Sprint(*id)
}

func esc(s string) string {
	if strings.ContainsAny(s, ",\"\n\r") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
