package services

import (
	"context"
	"fmt"
	"time"

	"erp-backend/internal/models"
	"erp-backend/pkg/logger"
	"erp-backend/pkg/metrics"

	log "github.com/sirupsen/logrus"
)

// FleetSource is the read side the report engines need. Implementations
// should fetch in as few round trips as possible.
type FleetSource interface {
	ListComplianceVehicles(ctx context.Context) ([]*models.Vehicle, error)
	ListMaintenanceContext(ctx context.Context, since time.Time) ([]*models.MaintenanceContext, error)
}

const (
	reportCompliance  = "compliance"
	reportPredictions = "predictions"
)

// ReportService produces derived fleet reports. Results are computed from
// the current repository state on every call and never stored.
type ReportService struct {
	source  FleetSource
	policy  ForecastPolicy
	now     func() time.Time
	metrics *metrics.ReportMetrics
	log     *log.Entry
}

func NewReportService(source FleetSource, policy ForecastPolicy, m *metrics.ReportMetrics) *ReportService {
	return &ReportService{
		source:  source,
		policy:  policy.withDefaults(),
		now:     time.Now,
		metrics: m,
		log:     logger.New("reports"),
	}
}

// SetClock overrides the time source.
func (s *ReportService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *ReportService) GetComplianceAlerts(ctx context.Context) (groups []models.ComplianceAlertGroup, err error) {
	started := time.Now()
	defer func() { s.metrics.ObserveRun(reportCompliance, started, err) }()

	vehicles, err := s.source.ListComplianceVehicles(ctx)
	if err != nil {
		s.log.WithError(err).Error("Failed to load vehicles for compliance scan")
		return nil, fmt.Errorf("load compliance vehicles: %w", err)
	}

	groups = ScanCompliance(vehicles, s.now(), s.policy)

	counts := map[string]int{models.ComplianceExpired: 0, models.ComplianceExpiring: 0}
	for _, g := range groups {
		for _, a := range g.Alerts {
			counts[a.Status]++
		}
	}
	s.metrics.SetAlertCounts(counts)

	s.log.WithFields(log.Fields{
		"vehicles": len(vehicles),
		"flagged":  len(groups),
		"expired":  counts[models.ComplianceExpired],
		"expiring": counts[models.ComplianceExpiring],
	}).Debug("Compliance scan completed")

	return groups, nil
}

func (s *ReportService) GetMaintenancePredictions(ctx context.Context) (predictions []models.MaintenancePrediction, err error) {
	started := time.Now()
	defer func() { s.metrics.ObserveRun(reportPredictions, started, err) }()

	now := s.now()
	items, err := s.source.ListMaintenanceContext(ctx, s.policy.UsageWindowStart(now))
	if err != nil {
		s.log.WithError(err).Error("Failed to load maintenance history")
		return nil, fmt.Errorf("load maintenance context: %w", err)
	}

	predictions = PredictMaintenance(items, now, s.policy)

	counts := map[string]int{
		models.PredictionOverdue:  0,
		models.PredictionUrgent:   0,
		models.PredictionUpcoming: 0,
	}
	for _, p := range predictions {
		counts[p.Status]++
	}
	s.metrics.SetPredictionCounts(counts)

	s.log.WithFields(log.Fields{
		"vehicles": len(predictions),
		"overdue":  counts[models.PredictionOverdue],
		"urgent":   counts[models.PredictionUrgent],
	}).Debug("Maintenance prediction completed")

	return predictions, nil
}
