package model

// Metric names one of the tracked daily activity counts. The value doubles as
// the JSON key and the column suffix.
type Metric string

const (
	MetricFA               Metric = "fa"
	MetricEH               Metric = "eh"
	MetricNewAppointments  Metric = "new_appointments"
	MetricRecommendations  Metric = "recommendations"
	MetricTIVInvitations   Metric = "tiv_invitations"
	MetricTAAInvitations   Metric = "taa_invitations"
	MetricTGSRegistrations Metric = "tgs_registrations"
	MetricBAVChecks        Metric = "bav_checks"
)

// AllMetrics is the fixed metric set in display order.
var AllMetrics = []Metric{
	MetricFA,
	MetricEH,
	MetricNewAppointments,
	MetricRecommendations,
	MetricTIVInvitations,
	MetricTAAInvitations,
	MetricTGSRegistrations,
	MetricBAVChecks,
}

func (m Metric) Valid() bool {
	for _, x := range AllMetrics {
		if x == m {
			return true
		}
	}
	return false
}

// MetricValues holds one optional number per metric. A nil field means "not
// set", which is different from an explicit zero.
type MetricValues struct {
	FA               *int `gorm:"column:fa" json:"fa,omitempty"`
	EH               *int `gorm:"column:eh" json:"eh,omitempty"`
	NewAppointments  *int `gorm:"column:new_appointments" json:"new_appointments,omitempty"`
	Recommendations  *int `gorm:"column:recommendations" json:"recommendations,omitempty"`
	TIVInvitations   *int `gorm:"column:tiv_invitations" json:"tiv_invitations,omitempty"`
	TAAInvitations   *int `gorm:"column:taa_invitations" json:"taa_invitations,omitempty"`
	TGSRegistrations *int `gorm:"column:tgs_registrations" json:"tgs_registrations,omitempty"`
	BAVChecks        *int `gorm:"column:bav_checks" json:"bav_checks,omitempty"`
}

func (v *MetricValues) field(m Metric) **int {
	switch m {
	case MetricFA:
		return &v.FA
	case MetricEH:
		return &v.EH
	case MetricNewAppointments:
		return &v.NewAppointments
	case MetricRecommendations:
		return &v.Recommendations
	case MetricTIVInvitations:
		return &v.TIVInvitations
	case MetricTAAInvitations:
		return &v.TAAInvitations
	case MetricTGSRegistrations:
		return &v.TGSRegistrations
	case MetricBAVChecks:
		return &v.BAVChecks
	}
	return nil
}

// Get returns the value for m, nil when unset.
func (v MetricValues) Get(m Metric) *int {
	p := v.field(m)
	if p == nil {
		return nil
	}
	return *p
}

func (v *MetricValues) Set(m Metric, n int) {
	if p := v.field(m); p != nil {
		*p = &n
	}
}

// Empty reports whether no metric is set.
func (v MetricValues) Empty() bool {
	for _, m := range AllMetrics {
		if v.Get(m) != nil {
			return false
		}
	}
	return true
}

// Negative returns the first metric holding a negative value.
func (v MetricValues) Negative() (Metric, bool) {
	for _, m := range AllMetrics {
		if n := v.Get(m); n != nil && *n < 0 {
			return m, true
		}
	}
	return "", false
}

// PersonalTargets are a user's own per-period targets.
type PersonalTargets struct {
	Daily   MetricValues `json:"daily"`
	Weekly  MetricValues `json:"weekly"`
	Monthly MetricValues `json:"monthly"`
}

func IntPtr(n int) *int { return &n }
