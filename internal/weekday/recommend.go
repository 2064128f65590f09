package weekday

import (
	"math"

	"leadership-dashboard/internal/model"
)

// Window is the trailing number of days averages are computed over.
const Window = 30

// Averages are activity rates over the trailing window.
type Averages struct {
	NewAppointmentsPerWeek  float64 `json:"new_appointments_per_week"`
	RecommendationsPerMonth float64 `json:"recommendations_per_month"`
	TIVPerMonth             float64 `json:"tiv_per_month"`
	TGSPerMonth             float64 `json:"tgs_per_month"`
	EHPerMonth              float64 `json:"eh_per_month"`
}

// AveragesFromTotals scales totals collected over days calendar days to
// weekly and monthly rates.
func AveragesFromTotals(totals map[model.Metric]int, days int) Averages {
	if days <= 0 {
		return Averages{}
	}
	perWeek := func(m model.Metric) float64 { return round1(float64(totals[m]) * 7 / float64(days)) }
	perMonth := func(m model.Metric) float64 { return round1(float64(totals[m]) * 30 / float64(days)) }
	return Averages{
		NewAppointmentsPerWeek:  perWeek(model.MetricNewAppointments),
		RecommendationsPerMonth: perMonth(model.MetricRecommendations),
		TIVPerMonth:             perMonth(model.MetricTIVInvitations),
		TGSPerMonth:             perMonth(model.MetricTGSRegistrations),
		EHPerMonth:              perMonth(model.MetricEH),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Recommendation is a fixed bundle of suggested actions.
type Recommendation struct {
	Key     string   `json:"key"`
	Title   string   `json:"title"`
	Actions []string `json:"actions"`
}

const (
	minAppointmentsPerWeek   = 12
	minRecommendationsPerMon = 30
	minTIVPerMonth           = 3
	minTGSPerMonth           = 1
	minEHPerMonth            = 500
)

var (
	newCustomers = Recommendation{
		Key:   "new_customers",
		Title: "Neukunden gewinnen",
		Actions: []string{
			"Plane täglich einen festen Telefonblock für Neuterminierung.",
			"Nutze deine Kontaktliste und ergänze sie um zehn neue Namen pro Woche.",
			"Frage jeden Bestandskunden nach einem Servicetermin.",
		},
	}
	referrals = Recommendation{
		Key:   "referrals",
		Title: "Empfehlungsfrage trainieren",
		Actions: []string{
			"Stelle am Ende jedes Termins die Empfehlungsfrage.",
			"Übe die Empfehlungsfrage im Rollenspiel mit deiner Führungskraft.",
			"Notiere dir zu jeder Empfehlung sofort Name und Kontext.",
		},
	}
	businessPartners = Recommendation{
		Key:   "business_partners",
		Title: "Geschäftspartner gewinnen",
		Actions: []string{
			"Lade diese Woche mindestens eine Person zur TIV ein.",
			"Sprich zufriedene Kunden auf die Karrierechance an.",
			"Melde Interessierte direkt zur nächsten TGS an.",
		},
	}
	increaseEH = Recommendation{
		Key:   "increase_eh",
		Title: "Einheiten steigern",
		Actions: []string{
			"Biete in jeder Finanzanalyse einen bAV-Check an.",
			"Prüfe offene Anträge und fasse nach.",
			"Setze dir ein Tagesziel für Einheiten und tracke es.",
		},
	}
)

// Recommend applies the rules independently; zero or more may fire. The
// result is in a fixed order.
func Recommend(a Averages) []Recommendation {
	out := []Recommendation{}
	if a.NewAppointmentsPerWeek < minAppointmentsPerWeek {
		out = append(out, newCustomers)
	}
	if a.RecommendationsPerMonth < minRecommendationsPerMon {
		out = append(out, referrals)
	}
	if a.TIVPerMonth < minTIVPerMonth || a.TGSPerMonth < minTGSPerMonth {
		out = append(out, businessPartners)
	}
	if a.EHPerMonth < minEHPerMonth {
		out = append(out, increaseEH)
	}
	return out
}
