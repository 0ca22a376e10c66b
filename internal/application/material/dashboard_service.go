package material

import (
	"context"
	"time"

	"github.com/crm/backend/internal/domain/material"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/crm/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ProjectProvider supplies the projects to summarize. The engine never
// queries persistence itself; the caller fetches rows and maps them into
// material.Project values.
type ProjectProvider interface {
	ListProjects(ctx context.Context) ([]material.Project, error)
}

// DashboardService assembles the upcoming-installations readiness board.
type DashboardService struct {
	provider    ProjectProvider
	log         *zap.Logger
	metrics     *telemetry.BoardMetrics
	horizonDays int
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(provider ProjectProvider, log *zap.Logger) *DashboardService {
	return &DashboardService{
		provider:    provider,
		log:         logger.OrNop(log),
		horizonDays: material.DefaultHorizonDays,
	}
}

// SetBoardMetrics sets the metrics collector
func (s *DashboardService) SetBoardMetrics(metrics *telemetry.BoardMetrics) {
	s.metrics = metrics
}

// SetHorizonDays overrides the dashboard lookahead window
func (s *DashboardService) SetHorizonDays(days int) {
	if days >= 0 {
		s.horizonDays = days
	}
}

// Snapshot computes the readiness snapshot for a single project.
// The second return value is false when the project has no installation date.
func (s *DashboardService) Snapshot(ctx context.Context, project material.Project, now time.Time) (*material.ProjectMaterialSnapshot, bool) {
	snapshot, ok := material.ProjectSnapshot(project, now)
	if ok {
		s.metrics.RecordRiskSnapshot(ctx, snapshot.RiskLevel.String())
	}
	return snapshot, ok
}

// UpcomingInstallations fetches all projects and returns the ranked readiness
// snapshots for installations due within the configured horizon.
func (s *DashboardService) UpcomingInstallations(ctx context.Context, now time.Time) ([]*material.ProjectMaterialSnapshot, error) {
	if s.provider == nil {
		return nil, shared.ErrProviderNotSet
	}

	projects, err := s.provider.ListProjects(ctx)
	if err != nil {
		s.log.Error("failed to list projects for readiness board", zap.Error(err))
		return nil, err
	}

	snapshots := material.UpcomingSnapshots(projects, s.horizonDays, now)

	critical, warning := 0, 0
	for _, snapshot := range snapshots {
		s.metrics.RecordRiskSnapshot(ctx, snapshot.RiskLevel.String())
		switch snapshot.RiskLevel {
		case material.RiskCritical:
			critical++
		case material.RiskWarning:
			warning++
		}
	}

	s.log.Info("readiness board computed",
		zap.Int("projects", len(projects)),
		zap.Int("snapshots", len(snapshots)),
		zap.Int("critical", critical),
		zap.Int("warning", warning),
		zap.Int("horizon_days", s.horizonDays),
	)

	return snapshots, nil
}
