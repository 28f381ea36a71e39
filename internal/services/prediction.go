package services

import (
	"math"
	"sort"
	"time"

	"erp-backend/internal/models"
)

// PredictMaintenance estimates the next service for each vehicle from
// whichever of the distance and calendar intervals runs out first. The result
// is ordered by days remaining, most pressing first, then by vehicle name.
func PredictMaintenance(items []*models.MaintenanceContext, now time.Time, policy ForecastPolicy) []models.MaintenancePrediction {
	policy = policy.withDefaults()

	predictions := make([]models.MaintenancePrediction, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		predictions = append(predictions, predictVehicle(item, now, policy))
	}

	sort.SliceStable(predictions, func(i, j int) bool {
		a, b := predictions[i], predictions[j]
		if a.DaysRemaining != b.DaysRemaining {
			return a.DaysRemaining < b.DaysRemaining
		}
		return a.VehicleName < b.VehicleName
	})
	return predictions
}

func predictVehicle(item *models.MaintenanceContext, now time.Time, policy ForecastPolicy) models.MaintenancePrediction {
	v := item.Vehicle

	lastOdometer := 0.0
	lastDate := v.CreatedAt
	if m := item.LatestMaintenance; m != nil {
		if m.OdometerAtMaintenanceKm != nil {
			lastOdometer = *m.OdometerAtMaintenanceKm
		}
		lastDate = m.MaintenanceDate
	}

	intervalKm := v.MaintenanceIntervalKm
	if intervalKm <= 0 {
		intervalKm = policy.DefaultIntervalKm
	}
	intervalDays := v.MaintenanceIntervalDays
	if intervalDays <= 0 {
		intervalDays = policy.DefaultIntervalDays
	}

	avgKmPerDay := averageDailyKm(item.RecentTrips, policy.UsageWindowStart(now), policy.UsageWindowDays)

	kmRemaining := float64(intervalKm) - (v.CurrentOdometerKm - lastOdometer)
	daysByDistance := int(math.Ceil(kmRemaining / avgKmPerDay))
	daysByCalendar := intervalDays - daysUntil(lastDate, now)

	daysRemaining := min(daysByDistance, daysByCalendar)
	basis := models.BasisTime
	if daysByDistance < daysByCalendar {
		basis = models.BasisMileage
	}

	return models.MaintenancePrediction{
		VehicleID:            v.ID,
		RegistrationNumber:   v.RegistrationNumber,
		VehicleName:          v.VehicleName,
		LastServiceDate:      lastDate,
		LastServiceOdometer:  lastOdometer,
		CurrentOdometer:      v.CurrentOdometerKm,
		AvgKmPerDay:          roundHalfUp(avgKmPerDay),
		PredictedServiceDate: addDays(now, daysRemaining),
		DaysRemaining:        daysRemaining,
		Status:               predictionStatus(daysRemaining, policy.UrgentThresholdDays),
		Basis:                basis,
	}
}

// averageDailyKm spreads the distance driven since windowStart over the whole
// window. It never drops below one km per day so idle vehicles still get a
// finite distance forecast.
func averageDailyKm(trips []models.Trip, windowStart time.Time, windowDays int) float64 {
	total := 0.0
	for _, t := range trips {
		if t.TripDate.Before(windowStart) {
			continue
		}
		total += t.TotalKm
	}
	return math.Max(total/float64(windowDays), 1)
}

func predictionStatus(daysRemaining, urgentThreshold int) string {
	switch {
	case daysRemaining <= 0:
		return models.PredictionOverdue
	case daysRemaining <= urgentThreshold:
		return models.PredictionUrgent
	default:
		return models.PredictionUpcoming
	}
}
