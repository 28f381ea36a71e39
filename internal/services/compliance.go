package services

import (
	"time"

	"erp-backend/internal/models"
)

type complianceDocument struct {
	label  string
	expiry *time.Time
}

func complianceDocuments(v *models.Vehicle) []complianceDocument {
	return []complianceDocument{
		{label: models.ComplianceInsurance, expiry: v.InsuranceExpiry},
		{label: models.ComplianceRegistration, expiry: v.RegistrationExpiry},
		{label: models.ComplianceFitness, expiry: v.FitnessExpiry},
	}
}

// ScanCompliance returns an alert group for every vehicle with at least one
// document that has expired or expires within the horizon. Vehicle order is
// preserved; documents are reported Insurance, Registration, Fitness.
//
// Expiry dates are stored as midnight UTC, so their calendar date is read in
// UTC while "today" is the current date in the policy zone.
func ScanCompliance(vehicles []*models.Vehicle, now time.Time, policy ForecastPolicy) []models.ComplianceAlertGroup {
	policy = policy.withDefaults()
	today := calendarDay(now, policy.Location)
	horizon := today.AddDate(0, 0, policy.ComplianceHorizonDays)

	groups := make([]models.ComplianceAlertGroup, 0)
	for _, v := range vehicles {
		if v == nil {
			continue
		}
		var alerts []models.ComplianceAlert
		for _, doc := range complianceDocuments(v) {
			if doc.expiry == nil {
				continue
			}
			expiry := calendarDay(*doc.expiry, time.UTC)
			if expiry.After(horizon) {
				continue
			}
			status := models.ComplianceExpiring
			if expiry.Before(today) {
				status = models.ComplianceExpired
			}
			alerts = append(alerts, models.ComplianceAlert{
				Type:          doc.label,
				ExpiryDate:    *doc.expiry,
				Status:        status,
				DaysRemaining: daysUntil(today, expiry),
			})
		}
		if len(alerts) == 0 {
			continue
		}
		groups = append(groups, models.ComplianceAlertGroup{
			VehicleID:          v.ID,
			RegistrationNumber: v.RegistrationNumber,
			VehicleName:        v.VehicleName,
			Alerts:             alerts,
		})
	}
	return groups
}
