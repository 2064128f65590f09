// Package export renders spreadsheet reports.
package export

import (
	"bytes"
	"fmt"
	"time"

	"leadership-dashboard/internal/model"
	"leadership-dashboard/internal/progress"

	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet = "Team"
	DetailSheet  = "Details"
)

// MemberRow is one team member's monthly progress.
type MemberRow struct {
	Name  string
	Email string
	Role  model.Role
	Items []progress.MetricProgress
}

var metricLabels = map[model.Metric]string{
	model.MetricFA:               "FA",
	model.MetricEH:               "EH",
	model.MetricNewAppointments:  "Neue Termine",
	model.MetricRecommendations:  "Empfehlungen",
	model.MetricTIVInvitations:   "TIV",
	model.MetricTAAInvitations:   "TAA",
	model.MetricTGSRegistrations: "TGS",
	model.MetricBAVChecks:        "bAV-Checks",
}

// MetricLabel is the display name used in report headers.
func MetricLabel(m model.Metric) string {
	if l, ok := metricLabels[m]; ok {
		return l
	}
	return string(m)
}

// TeamReport builds a workbook with a summary sheet (achieved count per
// metric and member) and a details sheet (current, target, percentage and
// colour per metric and member).
func TeamReport(month time.Time, rows []MemberRow) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(DetailSheet); err != nil {
		return nil, err
	}

	header := []any{"Name", "E-Mail", "Rolle"}
	for _, m := range model.AllMetrics {
		header = append(header, MetricLabel(m))
	}
	if err := f.SetSheetRow(SummarySheet, "A1", &header); err != nil {
		return nil, err
	}

	totals := make(map[model.Metric]int, len(model.AllMetrics))
	for i, r := range rows {
		line := []any{r.Name, r.Email, string(r.Role)}
		byMetric := index(r.Items)
		for _, m := range model.AllMetrics {
			line = append(line, byMetric[m].Current)
			totals[m] += byMetric[m].Current
		}
		if err := f.SetSheetRow(SummarySheet, fmt.Sprintf("A%d", i+2), &line); err != nil {
			return nil, err
		}
	}
	sum := []any{"Summe " + month.Format("01/2006"), "", ""}
	for _, m := range model.AllMetrics {
		sum = append(sum, totals[m])
	}
	if err := f.SetSheetRow(SummarySheet, fmt.Sprintf("A%d", len(rows)+2), &sum); err != nil {
		return nil, err
	}

	detail := []any{"Name", "Kennzahl", "Ist", "Ziel", "Prozent", "Status"}
	if err := f.SetSheetRow(DetailSheet, "A1", &detail); err != nil {
		return nil, err
	}
	line := 2
	for _, r := range rows {
		for _, it := range r.Items {
			row := []any{r.Name, MetricLabel(it.Metric), it.Current, it.Target, it.Percentage, string(it.Color)}
			if err := f.SetSheetRow(DetailSheet, fmt.Sprintf("A%d", line), &row); err != nil {
				return nil, err
			}
			line++
		}
	}

	for _, sheet := range []string{SummarySheet, DetailSheet} {
		if err := ApplyDefaultFormatting(f, sheet); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

// TeamReportBytes renders the workbook to xlsx bytes.
func TeamReportBytes(month time.Time, rows []MemberRow) ([]byte, error) {
	f, err := TeamReport(month, rows)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func TeamReportFilename(teamName string, month time.Time) string {
	if teamName == "" {
		teamName = "Team"
	}
	return sanitizeFileName(fmt.Sprintf("Teambericht %s %s.xlsx", teamName, month.Format("2006-01")))
}

func index(items []progress.MetricProgress) map[model.Metric]progress.MetricProgress {
	out := make(map[model.Metric]progress.MetricProgress, len(items))
	for _, it := range items {
		out[it.Metric] = it
	}
	return out
}
