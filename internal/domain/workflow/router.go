package workflow

import (
	"time"

	"github.com/crm/backend/internal/domain/material"
	"github.com/crm/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Snapshot is the per-supplier-order input to the queue router. The caller
// assembles it from order, document, and reservation records; the open item
// counts come from the readiness aggregator.
type Snapshot struct {
	HasOrder    bool
	OrderStatus OrderStatus

	SentAt                  *time.Time
	ABNumber                string
	ABReceivedAt            *time.Time
	ABConfirmedDeliveryDate valueobject.CivilDate
	SupplierDeliveryNoteID  uuid.UUID
	GoodsReceiptID          uuid.UUID
	BookedAt                *time.Time
	InstallationDate        valueobject.CivilDate

	OpenOrderItems    int
	OpenDeliveryItems int

	IsProjectCompleted      bool
	HasExternalOrderItems   bool
	HasInternalStockItems   bool
	HasReservationOnlyItems bool
	ReservationStatus       ReservationStatus
}

// HasDeliveryNote reports whether a supplier delivery note is on file.
func (s Snapshot) HasDeliveryNote() bool {
	return s.SupplierDeliveryNoteID != uuid.Nil || s.OrderStatus == OrderStatusDeliveryNoteReceived
}

// HasGoodsReceipt reports whether a goods receipt has been booked.
func (s Snapshot) HasGoodsReceipt() bool {
	return s.GoodsReceiptID != uuid.Nil || s.BookedAt != nil ||
		s.OrderStatus == OrderStatusGoodsReceiptBooked ||
		s.OrderStatus == OrderStatusReadyForInstallation
}

// HasAB reports whether an order acknowledgement exists. A delivery note or
// goods receipt counts as an implicit acknowledgement: physical goods
// presuppose an accepted order, even when the AB fields were never captured.
func (s Snapshot) HasAB() bool {
	return s.ABReceivedAt != nil || s.ABNumber != "" || !s.ABConfirmedDeliveryDate.IsZero() ||
		s.OrderStatus == OrderStatusABReceived ||
		s.HasDeliveryNote() || s.HasGoodsReceipt()
}

// OrderSent reports whether the order has left the house.
func (s Snapshot) OrderSent() bool {
	return s.SentAt != nil || s.OrderStatus.AtLeastSent()
}

func (s Snapshot) reservationOutstanding() bool {
	return s.HasReservationOnlyItems && s.ReservationStatus != ReservationStatusConfirmed
}

// Decision is the router's verdict: exactly one queue and one operator action.
type Decision struct {
	Queue      Queue
	NextAction string
}

func reservationDecision(status ReservationStatus) Decision {
	var action string
	switch status {
	case ReservationStatusRequested:
		action = "Montage ist angefragt. Bestätigung vom Montagepartner erfassen und Referenz speichern."
	case ReservationStatusCancelled:
		action = "Reservierung wurde storniert. Montage erneut beim Montagepartner reservieren."
	default:
		action = "Montage per E-Mail reservieren und Pläne mitschicken."
	}
	return Decision{Queue: QueueReservierungOffen, NextAction: action}
}

// Route decides which operational queue the supplier order belongs in and the
// single next action an operator should take. The cascade is strict priority,
// each rule terminal; absent dates simply fail their threshold checks, so the
// router never errors and never returns an empty action.
func Route(s Snapshot, now time.Time) Decision {
	if s.IsProjectCompleted {
		return Decision{
			Queue:      QueueErledigt,
			NextAction: "Keine Aktion: Projekt ist abgeschlossen.",
		}
	}

	if !s.HasExternalOrderItems && (s.HasInternalStockItems || s.HasReservationOnlyItems) {
		if s.reservationOutstanding() {
			return reservationDecision(s.ReservationStatus)
		}
		return Decision{
			Queue:      QueueMontagebereit,
			NextAction: "Keine Aktion: Material ist montagebereit.",
		}
	}

	daysUntilTarget, hasTarget := s.InstallationDate.DaysUntil(now)
	targetClose := hasTarget && daysUntilTarget <= material.DeliveryCriticalWindowDays
	orderingCritical := hasTarget && daysUntilTarget <= material.OrderingCriticalWindowDays

	needsOrdering := s.HasExternalOrderItems &&
		(!s.HasOrder || !s.OrderSent() ||
			s.OrderStatus == OrderStatusDraft || s.OrderStatus == OrderStatusPendingApproval)

	if needsOrdering && (targetClose || (orderingCritical && s.OpenOrderItems > 0)) {
		return Decision{
			Queue:      QueueBrennt,
			NextAction: "Sofort bestellen oder als extern bestellt markieren: Montagetermin ist in Gefahr.",
		}
	}

	if needsOrdering {
		action := "Bestellung aus Positionen erzeugen und an Lieferant senden."
		if s.HasOrder {
			action = "Bestellung prüfen und manuell senden."
		}
		return Decision{Queue: QueueZuBestellen, NextAction: action}
	}

	if !s.HasAB() {
		return Decision{
			Queue:      QueueABFehlt,
			NextAction: "AB erfassen (AB-Nummer + bestätigter Liefertermin + Abweichungen).",
		}
	}

	if s.OpenDeliveryItems > 0 {
		action := "Lieferanten-Lieferschein hochladen und Wareneingang starten."
		if s.HasDeliveryNote() {
			action = "Wareneingang buchen und Restmengen prüfen."
		}
		return Decision{Queue: QueueWareneingangOffen, NextAction: action}
	}

	if s.reservationOutstanding() {
		return reservationDecision(s.ReservationStatus)
	}

	return Decision{
		Queue:      QueueMontagebereit,
		NextAction: "Keine Aktion: Material ist montagebereit.",
	}
}
