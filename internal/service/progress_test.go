package service

import (
	"testing"
	"time"

	"leadership-dashboard/internal/model"
	"leadership-dashboard/internal/progress"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metricOf(t *testing.T, r *Report, m model.Metric) progress.MetricProgress {
	t.Helper()
	for _, it := range r.Metrics {
		if it.Metric == m {
			return it
		}
	}
	t.Fatalf("metric %s missing", m)
	return progress.MetricProgress{}
}

func monthQuery() Query { return Query{Period: progress.PeriodMonth, Date: today} }

func TestProgress_DailyTargetTimesWorkingDays(t *testing.T) {
	db, svc := setupServices(t)
	o := seedOrg(t, db)
	var pt model.PersonalTargets
	pt.Daily.Set(model.MetricFA, 2)
	_, err := svc.Users.SetTargets(ctx, o.a.ID, pt)
	require.NoError(t, err)
	seedEntry(t, db, o.a.ID, "2026-10-01", func(e *model.DailyEntry) { e.FA = 20 })
	seedEntry(t, db, o.a.ID, "2026-10-14", func(e *model.DailyEntry) { e.FA = 16 })
	seedEntry(t, db, o.a.ID, "2026-11-01", func(e *model.DailyEntry) { e.FA = 100 })

	r, err := svc.Progress.ForUser(ctx, actorOf(o.a), o.a.ID, monthQuery(), today)
	require.NoError(t, err)
	assert.Equal(t, model.Date("2026-10-01"), r.From)
	assert.Equal(t, model.Date("2026-10-31"), r.To)
	assert.Equal(t, 14, r.ElapsedDays)
	assert.Equal(t, 17, r.RemainingDays)

	fa := metricOf(t, r, model.MetricFA)
	assert.Equal(t, 36, fa.Current)
	assert.Equal(t, 44, fa.Target)
	assert.Equal(t, 82, fa.Percentage)
	assert.Equal(t, progress.Green, fa.Color)
	require.NotNil(t, fa.Projected)
	assert.Equal(t, 80, *fa.Projected)

	eh := metricOf(t, r, model.MetricEH)
	assert.Equal(t, 0, eh.Target)
	assert.Equal(t, 0, eh.Percentage)
}

func TestProgress_PlanningRowWins(t *testing.T) {
	db, svc := setupServices(t)
	o := seedOrg(t, db)
	var pt model.PersonalTargets
	pt.Daily.Set(model.MetricEH, 50)
	pt.Monthly.Set(model.MetricEH, 800)
	_, err := svc.Users.SetTargets(ctx, o.a.ID, pt)
	require.NoError(t, err)

	var planned model.MetricValues
	planned.Set(model.MetricEH, 0)
	_, err = svc.Goals.UpsertMonthly(ctx, o.a.ID, today, model.PlanningRequest{Targets: planned})
	require.NoError(t, err)

	r, err := svc.Progress.ForUser(ctx, actorOf(o.a), o.a.ID, monthQuery(), today)
	require.NoError(t, err)
	assert.Equal(t, 0, metricOf(t, r, model.MetricEH).Target, "explicit zero is authoritative")
}

func TestProgress_Week(t *testing.T) {
	db, svc := setupServices(t)
	o := seedOrg(t, db)
	var pt model.PersonalTargets
	pt.Daily.Set(model.MetricNewAppointments, 3)
	pt.Weekly.Set(model.MetricRecommendations, 8)
	_, err := svc.Users.SetTargets(ctx, o.a.ID, pt)
	require.NoError(t, err)
	seedEntry(t, db, o.a.ID, "2026-10-12", func(e *model.DailyEntry) { e.NewAppointments = 4; e.Recommendations = 2 })
	seedEntry(t, db, o.a.ID, "2026-10-11", func(e *model.DailyEntry) { e.NewAppointments = 9 })

	r, err := svc.Progress.ForUser(ctx, actorOf(o.a), o.a.ID, Query{Period: progress.PeriodWeek, Date: today}, today)
	require.NoError(t, err)
	assert.Equal(t, model.Date("2026-10-12"), r.From)
	assert.Equal(t, model.Date("2026-10-18"), r.To)

	na := metricOf(t, r, model.MetricNewAppointments)
	assert.Equal(t, 4, na.Current)
	assert.Equal(t, 15, na.Target)
	rec := metricOf(t, r, model.MetricRecommendations)
	assert.Equal(t, 8, rec.Target)
	assert.Equal(t, 25, rec.Percentage)
	assert.Equal(t, progress.Red, rec.Color)
}

func TestProgress_Range(t *testing.T) {
	db, svc := setupServices(t)
	o := seedOrg(t, db)
	var pt model.PersonalTargets
	pt.Daily.Set(model.MetricFA, 1)
	_, err := svc.Users.SetTargets(ctx, o.a.ID, pt)
	require.NoError(t, err)

	q := Query{
		Period: progress.PeriodRange,
		From:   time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC),
		To:     time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC),
	}
	r, err := svc.Progress.ForUser(ctx, actorOf(o.a), o.a.ID, q, today)
	require.NoError(t, err)
	assert.Equal(t, 10, metricOf(t, r, model.MetricFA).Target)

	q.From, q.To = q.To, q.From
	_, err = svc.Progress.ForUser(ctx, actorOf(o.a), o.a.ID, q, today)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestProgress_Access(t *testing.T) {
	db, svc := setupServices(t)
	o := seedOrg(t, db)

	_, err := svc.Progress.ForUser(ctx, actorOf(o.b), o.a.ID, monthQuery(), today)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Progress.ForUser(ctx, actorOf(o.top), o.a.ID, monthQuery(), today)
	assert.NoError(t, err)
	_, err = svc.Progress.ForTeam(ctx, actorOf(o.a), nil, monthQuery(), today)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestProgress_TeamSumsMembers(t *testing.T) {
	db, svc := setupServices(t)
	o := seedOrg(t, db)
	var pt model.PersonalTargets
	pt.Monthly.Set(model.MetricTIVInvitations, 4)
	for _, u := range []model.User{o.sub, o.a, o.b} {
		_, err := svc.Users.SetTargets(ctx, u.ID, pt)
		require.NoError(t, err)
	}
	seedEntry(t, db, o.a.ID, "2026-10-02", func(e *model.DailyEntry) { e.TIVInvitations = 3 })
	seedEntry(t, db, o.b.ID, "2026-10-03", func(e *model.DailyEntry) { e.TIVInvitations = 3 })
	seedEntry(t, db, o.other.ID, "2026-10-03", func(e *model.DailyEntry) { e.TIVInvitations = 50 })

	r, err := svc.Progress.ForTeam(ctx, actorOf(o.sub), nil, monthQuery(), today)
	require.NoError(t, err)
	assert.Equal(t, 3, r.Members)
	tiv := metricOf(t, r, model.MetricTIVInvitations)
	assert.Equal(t, 6, tiv.Current)
	assert.Equal(t, 12, tiv.Target)
	assert.Equal(t, 50, tiv.Percentage)
	assert.Equal(t, progress.Yellow, tiv.Color)
}

func TestProgress_TeamIncludesSubTeams(t *testing.T) {
	db, svc := setupServices(t)
	o := seedOrg(t, db)
	north, err := svc.Teams.Create(ctx, model.TeamRequest{Name: "Nord"})
	require.NoError(t, err)
	hamburg, err := svc.Teams.Create(ctx, model.TeamRequest{Name: "Hamburg", ParentTeamID: &north.ID, TeamLevel: 1})
	require.NoError(t, err)
	require.NoError(t, db.Model(&o.a).Update("team_id", north.ID).Error)
	require.NoError(t, db.Model(&o.b).Update("team_id", hamburg.ID).Error)
	require.NoError(t, db.Model(&o.other).Update("team_id", hamburg.ID).Error)
	seedEntry(t, db, o.a.ID, "2026-10-02", func(e *model.DailyEntry) { e.EH = 100 })
	seedEntry(t, db, o.b.ID, "2026-10-02", func(e *model.DailyEntry) { e.EH = 50 })
	seedEntry(t, db, o.other.ID, "2026-10-02", func(e *model.DailyEntry) { e.EH = 7 })

	r, err := svc.Progress.ForTeam(ctx, actorOf(o.admin), &north.ID, monthQuery(), today)
	require.NoError(t, err)
	assert.Equal(t, 3, r.Members)
	assert.Equal(t, 157, metricOf(t, r, model.MetricEH).Current)

	r, err = svc.Progress.ForTeam(ctx, actorOf(o.sub), &north.ID, monthQuery(), today)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Members, "leaders only see their own subtree")
	assert.Equal(t, 150, metricOf(t, r, model.MetricEH).Current)

	_, err = svc.Progress.ForTeam(ctx, actorOf(o.admin), ptr(int64(999)), monthQuery(), today)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProgress_ThresholdsColourMonthOnly(t *testing.T) {
	db, svc := setupServices(t)
	o := seedOrg(t, db)
	_, err := svc.Settings.SetProgress(ctx, ProgressSettings{Thresholds: map[model.Metric]progress.Threshold{
		model.MetricFA: {Red: 0, Yellow: 5, Green: 10},
	}})
	require.NoError(t, err)
	seedEntry(t, db, o.a.ID, "2026-10-12", func(e *model.DailyEntry) { e.FA = 10 })

	r, err := svc.Progress.ForUser(ctx, actorOf(o.a), o.a.ID, monthQuery(), today)
	require.NoError(t, err)
	assert.Equal(t, progress.Green, metricOf(t, r, model.MetricFA).Color)

	r, err = svc.Progress.ForUser(ctx, actorOf(o.a), o.a.ID, Query{Period: progress.PeriodWeek, Date: today}, today)
	require.NoError(t, err)
	assert.Equal(t, progress.Red, metricOf(t, r, model.MetricFA).Color, "no target, 0 percent")
}
