package services

import (
	"testing"
	"time"

	"erp-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var scanNow = time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)

func day(offset int) *time.Time {
	t := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
	return &t
}

func complianceVehicle(name string) *models.Vehicle {
	return &models.Vehicle{
		ID:                 primitive.NewObjectID(),
		RegistrationNumber: "REG-" + name,
		VehicleName:        name,
	}
}

func TestScanCompliance_NoDatesExcluded(t *testing.T) {
	v := complianceVehicle("Hilux")

	groups := ScanCompliance([]*models.Vehicle{v}, scanNow, DefaultForecastPolicy())

	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestScanCompliance_ExpiredYesterday(t *testing.T) {
	v := complianceVehicle("Hilux")
	v.InsuranceExpiry = day(-1)

	groups := ScanCompliance([]*models.Vehicle{v}, scanNow, DefaultForecastPolicy())

	require.Len(t, groups, 1)
	require.Len(t, groups[0].Alerts, 1)
	alert := groups[0].Alerts[0]
	assert.Equal(t, models.ComplianceInsurance, alert.Type)
	assert.Equal(t, models.ComplianceExpired, alert.Status)
	assert.Equal(t, -1, alert.DaysRemaining)
	assert.Equal(t, *day(-1), alert.ExpiryDate)
}

func TestScanCompliance_HorizonBoundary(t *testing.T) {
	inside := complianceVehicle("Alpha")
	inside.RegistrationExpiry = day(30)
	outside := complianceVehicle("Bravo")
	outside.RegistrationExpiry = day(31)

	groups := ScanCompliance([]*models.Vehicle{inside, outside}, scanNow, DefaultForecastPolicy())

	require.Len(t, groups, 1)
	assert.Equal(t, inside.ID, groups[0].VehicleID)
	alert := groups[0].Alerts[0]
	assert.Equal(t, models.ComplianceRegistration, alert.Type)
	assert.Equal(t, models.ComplianceExpiring, alert.Status)
	assert.Equal(t, 30, alert.DaysRemaining)
}

func TestScanCompliance_SameDayIsExpiring(t *testing.T) {
	v := complianceVehicle("Coaster")
	v.FitnessExpiry = day(0)

	groups := ScanCompliance([]*models.Vehicle{v}, scanNow, DefaultForecastPolicy())

	require.Len(t, groups, 1)
	assert.Equal(t, models.ComplianceExpiring, groups[0].Alerts[0].Status)
	assert.Equal(t, 0, groups[0].Alerts[0].DaysRemaining)
}

func TestScanCompliance_DocumentOrderAndIdentity(t *testing.T) {
	v := complianceVehicle("Land Cruiser")
	v.FitnessExpiry = day(5)
	v.RegistrationExpiry = day(-40)
	v.InsuranceExpiry = day(12)

	groups := ScanCompliance([]*models.Vehicle{v}, scanNow, DefaultForecastPolicy())

	require.Len(t, groups, 1)
	g := groups[0]
	assert.Equal(t, v.ID, g.VehicleID)
	assert.Equal(t, "REG-Land Cruiser", g.RegistrationNumber)
	assert.Equal(t, "Land Cruiser", g.VehicleName)
	require.Len(t, g.Alerts, 3)
	assert.Equal(t, models.ComplianceInsurance, g.Alerts[0].Type)
	assert.Equal(t, 12, g.Alerts[0].DaysRemaining)
	assert.Equal(t, models.ComplianceRegistration, g.Alerts[1].Type)
	assert.Equal(t, models.ComplianceExpired, g.Alerts[1].Status)
	assert.Equal(t, -40, g.Alerts[1].DaysRemaining)
	assert.Equal(t, models.ComplianceFitness, g.Alerts[2].Type)
}

func TestScanCompliance_OnlyFlaggedDocumentsListed(t *testing.T) {
	v := complianceVehicle("Bus")
	v.InsuranceExpiry = day(200)
	v.FitnessExpiry = day(3)

	groups := ScanCompliance([]*models.Vehicle{v}, scanNow, DefaultForecastPolicy())

	require.Len(t, groups, 1)
	require.Len(t, groups[0].Alerts, 1)
	assert.Equal(t, models.ComplianceFitness, groups[0].Alerts[0].Type)
}

func TestScanCompliance_PreservesInputOrder(t *testing.T) {
	a := complianceVehicle("Alpha")
	a.InsuranceExpiry = day(20)
	b := complianceVehicle("Bravo")
	b.InsuranceExpiry = day(-5)
	c := complianceVehicle("Charlie")
	d := complianceVehicle("Delta")
	d.FitnessExpiry = day(1)

	groups := ScanCompliance([]*models.Vehicle{a, b, c, d, nil}, scanNow, DefaultForecastPolicy())

	require.Len(t, groups, 3)
	assert.Equal(t, "Alpha", groups[0].VehicleName)
	assert.Equal(t, "Bravo", groups[1].VehicleName)
	assert.Equal(t, "Delta", groups[2].VehicleName)
}

func TestScanCompliance_CustomHorizon(t *testing.T) {
	v := complianceVehicle("Hilux")
	v.InsuranceExpiry = day(45)

	policy := DefaultForecastPolicy()
	assert.Empty(t, ScanCompliance([]*models.Vehicle{v}, scanNow, policy))

	policy.ComplianceHorizonDays = 60
	groups := ScanCompliance([]*models.Vehicle{v}, scanNow, policy)
	require.Len(t, groups, 1)
	assert.Equal(t, 45, groups[0].Alerts[0].DaysRemaining)
}

func TestScanCompliance_IsRepeatable(t *testing.T) {
	v := complianceVehicle("Hilux")
	v.InsuranceExpiry = day(2)
	vehicles := []*models.Vehicle{v}

	first := ScanCompliance(vehicles, scanNow, DefaultForecastPolicy())
	second := ScanCompliance(vehicles, scanNow, DefaultForecastPolicy())

	assert.Equal(t, first, second)
}

func TestScanCompliance_PolicyZoneDates(t *testing.T) {
	karachi, err := time.LoadLocation("Asia/Karachi")
	require.NoError(t, err)
	policy := DefaultForecastPolicy()
	policy.Location = karachi

	v := complianceVehicle("Hilux")
	v.InsuranceExpiry = day(-1)
	v.RegistrationExpiry = day(0)
	v.FitnessExpiry = day(30)
	late := complianceVehicle("Bravo")
	late.InsuranceExpiry = day(31)

	// 10:00 and 01:00 on 15 June in Karachi; the second is still 14 June in UTC.
	for _, now := range []time.Time{
		time.Date(2024, time.June, 15, 10, 0, 0, 0, karachi),
		time.Date(2024, time.June, 15, 1, 0, 0, 0, karachi),
	} {
		groups := ScanCompliance([]*models.Vehicle{v, late}, now, policy)

		require.Len(t, groups, 1, now)
		alerts := groups[0].Alerts
		require.Len(t, alerts, 3, now)
		assert.Equal(t, models.ComplianceExpired, alerts[0].Status)
		assert.Equal(t, -1, alerts[0].DaysRemaining)
		assert.Equal(t, models.ComplianceExpiring, alerts[1].Status)
		assert.Equal(t, 0, alerts[1].DaysRemaining)
		assert.Equal(t, models.ComplianceExpiring, alerts[2].Status)
		assert.Equal(t, 30, alerts[2].DaysRemaining)
		assert.Equal(t, *day(30), alerts[2].ExpiryDate)
	}
}
