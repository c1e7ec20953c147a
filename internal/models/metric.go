// ABOUTME: Body metric types tracked on the user profile over time.
// ABOUTME: Recording a metric updates the current value and its dated history.
package models

import (
	"fmt"
	"sort"
)

// MetricType names a body metric with a dated history on the profile.
type MetricType string

const (
	MetricWeight     MetricType = "weight"
	MetricMuscleMass MetricType = "muscle_mass"
)

// MetricUnits maps metric types to their display units.
var MetricUnits = map[MetricType]string{
	MetricWeight:     "kg",
	MetricMuscleMass: "kg",
}

// AllMetricTypes returns all valid metric types.
var AllMetricTypes = []MetricType{MetricWeight, MetricMuscleMass}

// IsValidMetricType checks if a string is a valid metric type.
func IsValidMetricType(s string) bool {
	for _, mt := range AllMetricTypes {
		if string(mt) == s {
			return true
		}
	}
	return false
}

// Metric is one dated body measurement.
type Metric struct {
	MetricType MetricType
	Value      float64
	Date       Date
}

// NewMetric creates a measurement dated today.
func NewMetric(metricType MetricType, value float64) *Metric {
	return &Metric{MetricType: metricType, Value: value, Date: Today()}
}

// WithDate sets a custom measurement date.
func (m *Metric) WithDate(d Date) *Metric {
	m.Date = d
	return m
}

// Patch converts the measurement into a profile update. The current value is
// replaced and the history gains a point for the date, overwriting any point
// already recorded on that day.
func (m *Metric) Patch(u *User) (UserPatch, error) {
	if m.Value <= 0 {
		return UserPatch{}, fmt.Errorf("%s must be positive", m.MetricType)
	}
	if !m.Date.Valid() {
		return UserPatch{}, fmt.Errorf("invalid date %q", m.Date)
	}

	value := m.Value
	switch m.MetricType {
	case MetricWeight:
		history := []WeightPoint{}
		for _, p := range u.WeightHistory {
			if p.Date != m.Date {
				history = append(history, p)
			}
		}
		history = append(history, WeightPoint{Date: m.Date, Weight: value})
		sort.SliceStable(history, func(i, j int) bool { return history[i].Date < history[j].Date })
		return UserPatch{Weight: &value, WeightHistory: history}, nil
	case MetricMuscleMass:
		history := []MassPoint{}
		for _, p := range u.MuscleMassHistory {
			if p.Date != m.Date {
				history = append(history, p)
			}
		}
		history = append(history, MassPoint{Date: m.Date, Mass: value})
		sort.SliceStable(history, func(i, j int) bool { return history[i].Date < history[j].Date })
		return UserPatch{MuscleMass: &value, MuscleMassHistory: history}, nil
	default:
		return UserPatch{}, fmt.Errorf("unknown metric type %q", m.MetricType)
	}
}
