package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/domain/shared/valueobject"
	"github.com/crm/backend/internal/domain/workflow"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var boardNow = time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)

type stubRowProvider struct {
	rows []OrderRow
	err  error
}

func (p *stubRowProvider) ListOrderRows(context.Context) ([]OrderRow, error) {
	return p.rows, p.err
}

func testRow(customer, installationDate string, mutate func(*workflow.Snapshot)) OrderRow {
	sentAt := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	snapshot := workflow.Snapshot{
		HasOrder:              true,
		OrderStatus:           workflow.OrderStatusSent,
		SentAt:                &sentAt,
		ABNumber:              "AB-1",
		InstallationDate:      valueobject.ParseCivilDate(installationDate),
		OpenDeliveryItems:     1,
		HasExternalOrderItems: true,
	}
	if mutate != nil {
		mutate(&snapshot)
	}
	return OrderRow{
		ProjectID:    uuid.New(),
		CustomerName: customer,
		SupplierName: "Holzwerk Nord",
		Snapshot:     snapshot,
	}
}

func TestBoardService_Build_RoutesAndSorts(t *testing.T) {
	provider := &stubRowProvider{rows: []OrderRow{
		// montagebereit, far out
		testRow("Zimmermann", "2026-02-25", func(s *workflow.Snapshot) {
			s.OpenDeliveryItems = 0
			s.GoodsReceiptID = uuid.New()
		}),
		// brennt: nothing ordered, 3 days out
		testRow("Becker", "2026-02-13", func(s *workflow.Snapshot) {
			s.HasOrder = false
			s.OrderStatus = ""
			s.SentAt = nil
			s.ABNumber = ""
			s.OpenOrderItems = 1
		}),
		// wareneingang_offen, no target date
		testRow("Albrecht", "", nil),
		// wareneingang_offen, dated rows sort before undated ones
		testRow("Özdemir", "2026-02-18", nil),
	}}

	service := NewBoardService(provider, nil)
	board, err := service.Build(context.Background(), boardNow)
	require.NoError(t, err)
	require.Len(t, board.Rows, 4)

	assert.Equal(t, "Becker", board.Rows[0].CustomerName)
	assert.Equal(t, workflow.QueueBrennt, board.Rows[0].Queue)
	assert.Equal(t, "Özdemir", board.Rows[1].CustomerName)
	assert.Equal(t, "Albrecht", board.Rows[2].CustomerName)
	assert.Nil(t, board.Rows[2].DaysUntilTarget)
	assert.Equal(t, "Zimmermann", board.Rows[3].CustomerName)

	assert.Equal(t, 1, board.QueueCounts[workflow.QueueBrennt])
	assert.Equal(t, 2, board.QueueCounts[workflow.QueueWareneingangOffen])
	assert.Equal(t, 1, board.QueueCounts[workflow.QueueMontagebereit])
	assert.Equal(t, 0, board.QueueCounts[workflow.QueueErledigt])

	require.NotNil(t, board.Rows[0].DaysUntilTarget)
	assert.Equal(t, 3, *board.Rows[0].DaysUntilTarget)
	assert.NotEmpty(t, board.Rows[0].NextAction)
	assert.Equal(t, "Brennt", board.Rows[0].QueueLabel)
}

func TestBoardService_Build_CollatedNameTiebreak(t *testing.T) {
	provider := &stubRowProvider{rows: []OrderRow{
		testRow("Özdemir", "2026-02-18", nil),
		testRow("Ostermann", "2026-02-18", nil),
	}}

	service := NewBoardService(provider, nil)
	board, err := service.Build(context.Background(), boardNow)
	require.NoError(t, err)
	require.Len(t, board.Rows, 2)

	assert.Equal(t, "Ostermann", board.Rows[0].CustomerName)
	assert.Equal(t, "Özdemir", board.Rows[1].CustomerName)
}

func TestBoardService_Build_NilProvider(t *testing.T) {
	service := NewBoardService(nil, nil)

	_, err := service.Build(context.Background(), boardNow)

	assert.ErrorIs(t, err, shared.ErrProviderNotSet)
}

func TestBoardService_Build_ProviderError(t *testing.T) {
	providerErr := errors.New("connection refused")
	service := NewBoardService(&stubRowProvider{err: providerErr}, nil)

	_, err := service.Build(context.Background(), boardNow)

	assert.ErrorIs(t, err, providerErr)
}

func TestBoardService_FilterByParam(t *testing.T) {
	provider := &stubRowProvider{rows: []OrderRow{
		testRow("Albrecht", "2026-02-18", nil), // wareneingang_offen
		testRow("Becker", "2026-02-25", func(s *workflow.Snapshot) { // montagebereit
			s.OpenDeliveryItems = 0
			s.GoodsReceiptID = uuid.New()
		}),
	}}

	service := NewBoardService(provider, nil)
	board, err := service.Build(context.Background(), boardNow)
	require.NoError(t, err)

	filtered := service.FilterByParam(board, "wareneingang-offen")
	require.Len(t, filtered, 1)
	assert.Equal(t, "Albrecht", filtered[0].CustomerName)

	// Legacy token maps onto the merged queue.
	legacy := service.FilterByParam(board, "lieferschein-da")
	require.Len(t, legacy, 1)
	assert.Equal(t, "Albrecht", legacy[0].CustomerName)

	// Unknown token means no filter.
	all := service.FilterByParam(board, "does-not-exist")
	assert.Len(t, all, 2)
}
