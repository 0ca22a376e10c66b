// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BoardMetrics records how often supplier orders land in each workflow queue
// and how risky upcoming projects look. Recording is nil-safe so services can
// run without a meter wired.
type BoardMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	routedTotal       metric.Int64Counter
	riskSnapshotTotal metric.Int64Counter
}

// NewBoardMetrics creates a new BoardMetrics instance on the given meter.
func NewBoardMetrics(meter metric.Meter, log *zap.Logger) (*BoardMetrics, error) {
	if log == nil {
		log = zap.NewNop()
	}

	bm := &BoardMetrics{
		meter:  meter,
		logger: log,
	}

	var err error
	bm.routedTotal, err = meter.Int64Counter(
		"crm.workflow.routed_total",
		metric.WithDescription("Supplier order rows routed, by queue"),
	)
	if err != nil {
		return nil, err
	}

	bm.riskSnapshotTotal, err = meter.Int64Counter(
		"crm.readiness.snapshots_total",
		metric.WithDescription("Project readiness snapshots computed, by risk level"),
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// RecordRoute records a routing decision.
func (m *BoardMetrics) RecordRoute(ctx context.Context, queue string) {
	if m == nil || m.routedTotal == nil {
		return
	}
	m.routedTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("queue", queue)))
}

// RecordRiskSnapshot records a computed project readiness snapshot.
func (m *BoardMetrics) RecordRiskSnapshot(ctx context.Context, riskLevel string) {
	if m == nil || m.riskSnapshotTotal == nil {
		return
	}
	m.riskSnapshotTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("risk_level", riskLevel)))
}
