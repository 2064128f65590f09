package service

import (
	"context"
	"fmt"
	"time"

	"leadership-dashboard/internal/export"
	"leadership-dashboard/internal/model"
	"leadership-dashboard/internal/progress"

	"gorm.io/gorm"
)

type ExportService struct {
	db       *gorm.DB
	progress *ProgressService
}

func NewExportService(db *gorm.DB, prog *ProgressService) *ExportService {
	return &ExportService{db: db, progress: prog}
}

// TeamReport renders the monthly progress of a group as an XLSX workbook
// and returns it with a download file name.
func (s *ExportService) TeamReport(ctx context.Context, actor Actor, teamID *int64, month, today time.Time) ([]byte, string, error) {
	members, err := s.progress.Members(ctx, actor, teamID)
	if err != nil {
		return nil, "", err
	}
	q := Query{Period: progress.PeriodMonth, Date: month}
	reports, err := s.progress.perUser(ctx, members, q, today)
	if err != nil {
		return nil, "", err
	}
	rows := make([]export.MemberRow, 0, len(members))
	for _, u := range members {
		rows = append(rows, export.MemberRow{Name: u.Name, Email: u.Email, Role: u.Role, Items: reports[u.ID]})
	}

	name := ""
	if teamID != nil {
		var t model.Team
		if err := s.db.WithContext(ctx).First(&t, *teamID).Error; err != nil {
			return nil, "", notFound("team", err)
		}
		name = t.Name
	}
	start, _ := progress.MonthRange(month)
	data, err := export.TeamReportBytes(start, rows)
	if err != nil {
		return nil, "", fmt.Errorf("render team report: %w", err)
	}
	return data, export.TeamReportFilename(name, start), nil
}
