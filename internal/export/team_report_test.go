package export

import (
	"bytes"
	"testing"
	"time"

	"leadership-dashboard/internal/model"
	"leadership-dashboard/internal/progress"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleRows() []MemberRow {
	var monthly model.MetricValues
	monthly.Set(model.MetricFA, 109)
	totals := progress.Sum([]model.DailyEntry{{FA: 15, EH: 200}})
	targets := progress.ResolveTargets(progress.TargetSource{Explicit: []model.MetricValues{monthly}}, 22)
	items := progress.Build(progress.PeriodMonth, totals, targets, progress.DefaultConfig())

	return []MemberRow{
		{Name: "Anna Berger", Email: "anna@example.com", Role: model.RoleAdvisor, Items: items},
		{Name: "Ben Krause", Email: "ben@example.com", Role: model.RoleSubLeader, Items: items},
	}
}

func TestTeamReport(t *testing.T) {
	month := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	data, err := TeamReportBytes(month, sampleRows())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Name", "E-Mail", "Rolle", "FA", "EH", "Neue Termine", "Empfehlungen", "TIV", "TAA", "TGS", "bAV-Checks"}, rows[0])
	assert.Equal(t, "Anna Berger", rows[1][0])
	assert.Equal(t, "15", rows[1][3])
	assert.Equal(t, "Summe 10/2026", rows[3][0])
	assert.Equal(t, "30", rows[3][3])
	assert.Equal(t, "400", rows[3][4])

	detail, err := f.GetRows(DetailSheet)
	require.NoError(t, err)
	require.Len(t, detail, 1+2*len(model.AllMetrics))
	assert.Equal(t, []string{"Anna Berger", "FA", "15", "109", "14", "red"}, detail[1])
}

func TestTeamReport_NoMembers(t *testing.T) {
	f, err := TeamReport(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestTeamReportFilename(t *testing.T) {
	month := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Teambericht Nord_Ost 2026-10.xlsx", TeamReportFilename("Nord/Ost", month))
	assert.Equal(t, "Teambericht Team 2026-10.xlsx", TeamReportFilename("", month))
}

func TestColumnName(t *testing.T) {
	assert.Equal(t, "A", columnName(1))
	assert.Equal(t, "Z", columnName(26))
	assert.Equal(t, "AA", columnName(27))
	assert.Equal(t, "AZ", columnName(52))
}
