package services

import (
	"math"
	"time"

	"erp-backend/internal/models"
)

const millisPerDay = 86_400_000

// ForecastPolicy holds the thresholds shared by the compliance scanner and
// the maintenance predictor.
type ForecastPolicy struct {
	ComplianceHorizonDays int
	UsageWindowDays       int
	UrgentThresholdDays   int
	DefaultIntervalKm     int
	DefaultIntervalDays   int
	Location              *time.Location
}

func DefaultForecastPolicy() ForecastPolicy {
	return ForecastPolicy{
		ComplianceHorizonDays: 30,
		UsageWindowDays:       30,
		UrgentThresholdDays:   15,
		DefaultIntervalKm:     models.DefaultMaintenanceIntervalKm,
		DefaultIntervalDays:   models.DefaultMaintenanceIntervalDays,
		Location:              time.UTC,
	}
}

// withDefaults fills zero fields so a partially populated policy behaves
// like the default one.
func (p ForecastPolicy) withDefaults() ForecastPolicy {
	d := DefaultForecastPolicy()
	if p.ComplianceHorizonDays <= 0 {
		p.ComplianceHorizonDays = d.ComplianceHorizonDays
	}
	if p.UsageWindowDays <= 0 {
		p.UsageWindowDays = d.UsageWindowDays
	}
	if p.UrgentThresholdDays <= 0 {
		p.UrgentThresholdDays = d.UrgentThresholdDays
	}
	if p.DefaultIntervalKm <= 0 {
		p.DefaultIntervalKm = d.DefaultIntervalKm
	}
	if p.DefaultIntervalDays <= 0 {
		p.DefaultIntervalDays = d.DefaultIntervalDays
	}
	if p.Location == nil {
		p.Location = d.Location
	}
	return p
}

// UsageWindowStart is the earliest trip date that counts towards the
// average daily distance.
func (p ForecastPolicy) UsageWindowStart(now time.Time) time.Time {
	p = p.withDefaults()
	return now.Add(-time.Duration(p.UsageWindowDays) * 24 * time.Hour)
}

// daysUntil is the ceiling of the millisecond difference in whole days.
// Negative when to is before from.
func daysUntil(from, to time.Time) int {
	ms := to.Sub(from).Milliseconds()
	return int(math.Ceil(float64(ms) / millisPerDay))
}

// calendarDay is the date t falls on in loc, as midnight UTC. Comparing
// calendar days this way keeps whole-day differences exact regardless of
// the zone's offset or DST.
func calendarDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func addDays(t time.Time, days int) time.Time {
	return t.Add(time.Duration(days) * 24 * time.Hour)
}

// roundHalfUp rounds to two decimal places, halves away from zero for
// positive values.
func roundHalfUp(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
