package workflow

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/domain/workflow"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/crm/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// OrderRow is one supplier order as assembled by the caller: project identity
// for display plus the routing snapshot.
type OrderRow struct {
	ProjectID           uuid.UUID
	ProjectOrderNumber  string
	CustomerName        string
	SupplierID          uuid.UUID
	SupplierName        string
	SupplierOrderNumber string
	Snapshot            workflow.Snapshot
}

// RowProvider supplies the worklist rows. The caller joins order, document,
// and reservation records into OrderRow values; this service only derives.
type RowProvider interface {
	ListOrderRows(ctx context.Context) ([]OrderRow, error)
}

// BoardRow is a routed worklist row.
type BoardRow struct {
	OrderRow
	Queue           workflow.Queue
	QueueLabel      string
	NextAction      string
	ABTiming        workflow.ABTiming
	DaysUntilTarget *int
}

// Board is the assembled supplier order worklist.
type Board struct {
	Rows        []BoardRow
	QueueCounts map[workflow.Queue]int
}

// BoardService builds the supplier order worklist from provider rows.
type BoardService struct {
	provider RowProvider
	log      *zap.Logger
	metrics  *telemetry.BoardMetrics
}

// NewBoardService creates a new BoardService
func NewBoardService(provider RowProvider, log *zap.Logger) *BoardService {
	return &BoardService{
		provider: provider,
		log:      logger.OrNop(log),
	}
}

// SetBoardMetrics sets the metrics collector
func (s *BoardService) SetBoardMetrics(metrics *telemetry.BoardMetrics) {
	s.metrics = metrics
}

// Build routes every provider row and returns the worklist ordered by queue
// urgency, then days until the installation target, then customer name.
// Rows without a target date sort after dated ones within their queue.
func (s *BoardService) Build(ctx context.Context, now time.Time) (*Board, error) {
	if s.provider == nil {
		return nil, shared.ErrProviderNotSet
	}

	orderRows, err := s.provider.ListOrderRows(ctx)
	if err != nil {
		s.log.Error("failed to list supplier order rows", zap.Error(err))
		return nil, err
	}

	counts := make(map[workflow.Queue]int, len(workflow.Queues()))
	for _, queue := range workflow.Queues() {
		counts[queue] = 0
	}

	rows := make([]BoardRow, 0, len(orderRows))
	for _, orderRow := range orderRows {
		decision := workflow.Route(orderRow.Snapshot, now)

		var daysUntilTarget *int
		if days, ok := orderRow.Snapshot.InstallationDate.DaysUntil(now); ok {
			daysUntilTarget = &days
		}

		rows = append(rows, BoardRow{
			OrderRow:        orderRow,
			Queue:           decision.Queue,
			QueueLabel:      decision.Queue.Label(),
			NextAction:      decision.NextAction,
			ABTiming:        workflow.ABTimingOf(orderRow.Snapshot.ABConfirmedDeliveryDate, orderRow.Snapshot.BookedAt),
			DaysUntilTarget: daysUntilTarget,
		})

		counts[decision.Queue]++
		s.metrics.RecordRoute(ctx, decision.Queue.String())
	}

	collator := collate.New(language.German)
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Queue.Urgency() != b.Queue.Urgency() {
			return a.Queue.Urgency() < b.Queue.Urgency()
		}
		aDays, bDays := rowDays(a), rowDays(b)
		if aDays != bDays {
			return aDays < bDays
		}
		return collator.CompareString(a.CustomerName, b.CustomerName) < 0
	})

	s.log.Info("supplier order board computed",
		zap.Int("rows", len(rows)),
		zap.Int("brennt", counts[workflow.QueueBrennt]),
		zap.Int("zu_bestellen", counts[workflow.QueueZuBestellen]),
	)

	return &Board{Rows: rows, QueueCounts: counts}, nil
}

// FilterByParam returns the rows belonging to the queue named by the URL
// token. Unrecognized tokens mean "no filter" and return all rows.
func (s *BoardService) FilterByParam(board *Board, param string) []BoardRow {
	queue, ok := workflow.QueueFromParam(param)
	if !ok {
		return board.Rows
	}

	filtered := make([]BoardRow, 0, board.QueueCounts[queue])
	for _, row := range board.Rows {
		if row.Queue == queue {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

func rowDays(row BoardRow) int {
	if row.DaysUntilTarget == nil {
		return math.MaxInt
	}
	return *row.DaysUntilTarget
}
