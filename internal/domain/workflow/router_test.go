package workflow

import (
	"testing"
	"time"

	"github.com/crm/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var routerNow = time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)

func timePtr(t time.Time) *time.Time { return &t }

// buildSnapshot returns a healthy mid-flow snapshot: order sent, AB on file,
// delivery outstanding, installation comfortably far out.
func buildSnapshot(overrides func(*Snapshot)) Snapshot {
	sentAt := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	abReceivedAt := time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC)
	snapshot := Snapshot{
		HasOrder:                true,
		OrderStatus:             OrderStatusSent,
		SentAt:                  &sentAt,
		ABNumber:                "AB-1",
		ABReceivedAt:            &abReceivedAt,
		ABConfirmedDeliveryDate: valueobject.ParseCivilDate("2026-02-12"),
		InstallationDate:        valueobject.ParseCivilDate("2026-02-20"),
		OpenOrderItems:          0,
		OpenDeliveryItems:       1,
		HasExternalOrderItems:   true,
	}
	if overrides != nil {
		overrides(&snapshot)
	}
	return snapshot
}

// ============================================
// Route Tests
// ============================================

func TestRoute_CompletedProjectWinsOverEverything(t *testing.T) {
	decision := Route(buildSnapshot(func(s *Snapshot) {
		s.IsProjectCompleted = true
		s.HasOrder = false
		s.OpenOrderItems = 3
		s.InstallationDate = valueobject.ParseCivilDate("2026-02-10")
	}), routerNow)

	assert.Equal(t, QueueErledigt, decision.Queue)
	assert.NotEmpty(t, decision.NextAction)
}

func TestRoute_MissingOrderFarOut(t *testing.T) {
	decision := Route(buildSnapshot(func(s *Snapshot) {
		s.HasOrder = false
		s.OrderStatus = ""
		s.SentAt = nil
		s.ABNumber = ""
		s.ABReceivedAt = nil
		s.ABConfirmedDeliveryDate = valueobject.CivilDate{}
	}), routerNow)

	assert.Equal(t, QueueZuBestellen, decision.Queue)
	assert.Contains(t, decision.NextAction, "senden")
}

func TestRoute_DraftOrderIsStillToOrder(t *testing.T) {
	decision := Route(buildSnapshot(func(s *Snapshot) {
		s.OrderStatus = OrderStatusDraft
		s.SentAt = nil
	}), routerNow)

	assert.Equal(t, QueueZuBestellen, decision.Queue)
	assert.Equal(t, "Bestellung prüfen und manuell senden.", decision.NextAction)
}

func TestRoute_UnorderedWithinSevenDaysBurns(t *testing.T) {
	// No order, installation 3 days out, one open order item.
	decision := Route(buildSnapshot(func(s *Snapshot) {
		s.HasOrder = false
		s.OrderStatus = ""
		s.SentAt = nil
		s.InstallationDate = valueobject.ParseCivilDate("2026-02-13")
		s.OpenOrderItems = 1
	}), routerNow)

	assert.Equal(t, QueueBrennt, decision.Queue)
}

func TestRoute_UnsentOrderTargetCloseBurnsEvenWithoutOpenItems(t *testing.T) {
	decision := Route(buildSnapshot(func(s *Snapshot) {
		s.OrderStatus = OrderStatusDraft
		s.SentAt = nil
		s.InstallationDate = valueobject.ParseCivilDate("2026-02-11")
		s.OpenOrderItems = 0
	}), routerNow)

	assert.Equal(t, QueueBrennt, decision.Queue)
}

func TestRoute_UnsentOrderEightDaysOutDoesNotBurn(t *testing.T) {
	decision := Route(buildSnapshot(func(s *Snapshot) {
		s.OrderStatus = OrderStatusDraft
		s.SentAt = nil
		s.InstallationDate = valueobject.ParseCivilDate("2026-02-18")
		s.OpenOrderItems = 1
	}), routerNow)

	assert.Equal(t, QueueZuBestellen, decision.Queue)
}

func TestRoute_MissingInstallationDateNeverBurns(t *testing.T) {
	decision := Route(buildSnapshot(func(s *Snapshot) {
		s.HasOrder = false
		s.OrderStatus = ""
		s.SentAt = nil
		s.InstallationDate = valueobject.CivilDate{}
		s.OpenOrderItems = 5
	}), routerNow)

	assert.Equal(t, QueueZuBestellen, decision.Queue)
}

func TestRoute_SentWithoutABIsABFehlt(t *testing.T) {
	decision := Route(buildSnapshot(func(s *Snapshot) {
		s.ABNumber = ""
		s.ABReceivedAt = nil
		s.ABConfirmedDeliveryDate = valueobject.CivilDate{}
	}), routerNow)

	assert.Equal(t, QueueABFehlt, decision.Queue)
	assert.Contains(t, decision.NextAction, "AB")
}

func TestRoute_DeliveryNoteImpliesAB(t *testing.T) {
	// Goods arrived through an undocumented path: the delivery note counts
	// as an implicit acknowledgement.
	decision := Route(buildSnapshot(func(s *Snapshot) {
		s.ABNumber = ""
		s.ABReceivedAt = nil
		s.ABConfirmedDeliveryDate = valueobject.CivilDate{}
		s.SupplierDeliveryNoteID = uuid.New()
	}), routerNow)

	assert.Equal(t, QueueWareneingangOffen, decision.Queue)
}

func TestRoute_OpenDeliveryActionDependsOnDeliveryNote(t *testing.T) {
	withoutNote := Route(buildSnapshot(nil), routerNow)
	require.Equal(t, QueueWareneingangOffen, withoutNote.Queue)
	assert.Contains(t, withoutNote.NextAction, "hochladen")

	withNote := Route(buildSnapshot(func(s *Snapshot) {
		s.SupplierDeliveryNoteID = uuid.New()
	}), routerNow)
	require.Equal(t, QueueWareneingangOffen, withNote.Queue)
	assert.Contains(t, withNote.NextAction, "buchen")
}

func TestRoute_EverythingDeliveredIsMontagebereit(t *testing.T) {
	decision := Route(buildSnapshot(func(s *Snapshot) {
		s.GoodsReceiptID = uuid.New()
		s.BookedAt = timePtr(time.Date(2026, 2, 9, 14, 0, 0, 0, time.UTC))
		s.OpenDeliveryItems = 0
	}), routerNow)

	assert.Equal(t, QueueMontagebereit, decision.Queue)
}

func TestRoute_DeliveredButReservationOutstanding(t *testing.T) {
	decision := Route(buildSnapshot(func(s *Snapshot) {
		s.GoodsReceiptID = uuid.New()
		s.OpenDeliveryItems = 0
		s.HasReservationOnlyItems = true
		s.ReservationStatus = ReservationStatusRequested
	}), routerNow)

	assert.Equal(t, QueueReservierungOffen, decision.Queue)
	assert.Contains(t, decision.NextAction, "angefragt")
}

// ============================================
// Non-order procurement Tests
// ============================================

func TestRoute_InternalStockOnlyIsMontagebereit(t *testing.T) {
	decision := Route(Snapshot{
		HasInternalStockItems: true,
		InstallationDate:      valueobject.ParseCivilDate("2026-02-11"),
	}, routerNow)

	assert.Equal(t, QueueMontagebereit, decision.Queue)
}

func TestRoute_ReservationOnlyActionVariants(t *testing.T) {
	tests := []struct {
		name           string
		status         ReservationStatus
		wantQueue      Queue
		actionContains string
	}{
		{"no reservation yet", "", QueueReservierungOffen, "reservieren"},
		{"draft reservation", ReservationStatusDraft, QueueReservierungOffen, "reservieren"},
		{"requested reservation", ReservationStatusRequested, QueueReservierungOffen, "angefragt"},
		{"cancelled reservation", ReservationStatusCancelled, QueueReservierungOffen, "erneut"},
		{"confirmed reservation", ReservationStatusConfirmed, QueueMontagebereit, "montagebereit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Route(Snapshot{
				HasReservationOnlyItems: true,
				ReservationStatus:       tt.status,
			}, routerNow)

			assert.Equal(t, tt.wantQueue, decision.Queue)
			assert.Contains(t, decision.NextAction, tt.actionContains)
		})
	}
}

// ============================================
// Totality
// ============================================

func TestRoute_TotalAndExclusive(t *testing.T) {
	// Every combination of the driving signals maps to exactly one valid
	// queue with a non-empty action.
	statuses := []OrderStatus{"", OrderStatusDraft, OrderStatusPendingApproval, OrderStatusSent,
		OrderStatusABReceived, OrderStatusDeliveryNoteReceived, OrderStatusGoodsReceiptOpen,
		OrderStatusGoodsReceiptBooked, OrderStatusReadyForInstallation}
	dates := []valueobject.CivilDate{{}, valueobject.ParseCivilDate("2026-02-11"), valueobject.ParseCivilDate("2026-03-01")}
	reservations := []ReservationStatus{"", ReservationStatusRequested, ReservationStatusConfirmed, ReservationStatusCancelled}

	for _, hasOrder := range []bool{false, true} {
		for _, status := range statuses {
			for _, date := range dates {
				for _, reservation := range reservations {
					for _, completed := range []bool{false, true} {
						for _, external := range []bool{false, true} {
							for _, openDelivery := range []int{0, 2} {
								snapshot := Snapshot{
									HasOrder:                hasOrder,
									OrderStatus:             status,
									InstallationDate:        date,
									OpenOrderItems:          1,
									OpenDeliveryItems:       openDelivery,
									IsProjectCompleted:      completed,
									HasExternalOrderItems:   external,
									HasReservationOnlyItems: true,
									ReservationStatus:       reservation,
								}
								decision := Route(snapshot, routerNow)
								require.True(t, decision.Queue.IsValid(), "snapshot %+v", snapshot)
								require.NotEmpty(t, decision.NextAction, "snapshot %+v", snapshot)
							}
						}
					}
				}
			}
		}
	}
}
