package weekday

import (
	"testing"

	"leadership-dashboard/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompts_FallbackWednesday(t *testing.T) {
	q, err := Prompts(3, false, nil)
	require.NoError(t, err)
	assert.True(t, q.Fallback)
	assert.Contains(t, q.TodayPrompts, "Wen meldest du für die TIV an?")
	assert.Empty(t, q.TraineePrompt)
}

func TestPrompts_TraineeGetsTraineePrompt(t *testing.T) {
	q, err := Prompts(2, true, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, q.TraineePrompt)
}

func TestPrompts_StoredWins(t *testing.T) {
	stored := &Questions{YesterdayPrompt: "Gestern?", TodayPrompts: []string{"Heute?"}, TraineePrompt: "Azubi?"}
	q, err := Prompts(1, true, stored)
	require.NoError(t, err)
	assert.False(t, q.Fallback)
	assert.Equal(t, 1, q.Weekday)
	assert.Equal(t, []string{"Heute?"}, q.TodayPrompts)
	assert.Equal(t, "Azubi?", q.TraineePrompt)

	q.TodayPrompts[0] = "changed"
	assert.Equal(t, "Heute?", stored.TodayPrompts[0])
}

func TestPrompts_OutOfRange(t *testing.T) {
	for _, wd := range []int{0, 6, 7, -1} {
		_, err := Prompts(wd, false, nil)
		assert.Error(t, err, wd)
	}
}

func TestFallbackCoversWorkdays(t *testing.T) {
	for wd := 1; wd <= 5; wd++ {
		q, ok := Fallback[wd]
		require.True(t, ok, wd)
		assert.Equal(t, wd, q.Weekday)
		assert.NotEmpty(t, q.YesterdayPrompt)
		assert.NotEmpty(t, q.TodayPrompts)
	}
}

func keys(rs []Recommendation) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Key
	}
	return out
}

func TestRecommend(t *testing.T) {
	healthy := Averages{
		NewAppointmentsPerWeek:  12,
		RecommendationsPerMonth: 30,
		TIVPerMonth:             3,
		TGSPerMonth:             1,
		EHPerMonth:              500,
	}

	tests := []struct {
		name string
		mod  func(a *Averages)
		want []string
	}{
		{"nothing fires at thresholds", func(a *Averages) {}, []string{}},
		{"few appointments", func(a *Averages) { a.NewAppointmentsPerWeek = 11.9 }, []string{"new_customers"}},
		{"few referrals", func(a *Averages) { a.RecommendationsPerMonth = 10 }, []string{"referrals"}},
		{"few tiv", func(a *Averages) { a.TIVPerMonth = 2 }, []string{"business_partners"}},
		{"no tgs", func(a *Averages) { a.TGSPerMonth = 0 }, []string{"business_partners"}},
		{"low eh", func(a *Averages) { a.EHPerMonth = 499 }, []string{"increase_eh"}},
		{"all fire", func(a *Averages) { *a = Averages{} }, []string{"new_customers", "referrals", "business_partners", "increase_eh"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := healthy
			tt.mod(&a)
			assert.Equal(t, tt.want, keys(Recommend(a)))
		})
	}
}

func TestRecommend_BundlesHaveActions(t *testing.T) {
	for _, r := range Recommend(Averages{}) {
		assert.NotEmpty(t, r.Title)
		assert.NotEmpty(t, r.Actions)
	}
}

func TestAveragesFromTotals(t *testing.T) {
	totals := map[model.Metric]int{
		model.MetricNewAppointments:  60,
		model.MetricRecommendations:  45,
		model.MetricTIVInvitations:   2,
		model.MetricTGSRegistrations: 1,
		model.MetricEH:               900,
	}
	a := AveragesFromTotals(totals, Window)
	assert.Equal(t, 14.0, a.NewAppointmentsPerWeek)
	assert.Equal(t, 45.0, a.RecommendationsPerMonth)
	assert.Equal(t, 2.0, a.TIVPerMonth)
	assert.Equal(t, 1.0, a.TGSPerMonth)
	assert.Equal(t, 900.0, a.EHPerMonth)

	assert.Equal(t, Averages{}, AveragesFromTotals(totals, 0))
}
