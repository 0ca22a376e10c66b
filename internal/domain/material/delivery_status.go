package material

import (
	"github.com/crm/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// DeliveryStatus represents the delivery status of an order line
//
// The status is derived, never trusted as ground truth on read: it is always
// recomputed from quantities via ResolveDeliveryStatus. The one exception is
// the manual "Fehlteile" flag: once a line is marked missing it stays missing
// until delivery completes it.
type DeliveryStatus string

const (
	DeliveryStatusNotOrdered         DeliveryStatus = "not_ordered"
	DeliveryStatusOrdered            DeliveryStatus = "ordered"
	DeliveryStatusPartiallyDelivered DeliveryStatus = "partially_delivered"
	DeliveryStatusDelivered          DeliveryStatus = "delivered"
	DeliveryStatusMissing            DeliveryStatus = "missing"
)

// IsValid checks if the status is a valid DeliveryStatus
func (s DeliveryStatus) IsValid() bool {
	switch s {
	case DeliveryStatusNotOrdered, DeliveryStatusOrdered, DeliveryStatusPartiallyDelivered,
		DeliveryStatusDelivered, DeliveryStatusMissing:
		return true
	}
	return false
}

// String returns the string representation of DeliveryStatus
func (s DeliveryStatus) String() string {
	return string(s)
}

// Label returns the operator-facing display label
func (s DeliveryStatus) Label() string {
	switch s {
	case DeliveryStatusNotOrdered:
		return "Nicht bestellt"
	case DeliveryStatusOrdered:
		return "Bestellt"
	case DeliveryStatusPartiallyDelivered:
		return "Teilweise geliefert"
	case DeliveryStatusDelivered:
		return "Geliefert"
	case DeliveryStatusMissing:
		return "Fehlteile"
	}
	return string(s)
}

// impliesOrdered reports whether the status implies the line was ordered.
// A line never regresses to not_ordered merely because the caller omitted a
// quantity.
func (s DeliveryStatus) impliesOrdered() bool {
	switch s {
	case DeliveryStatusOrdered, DeliveryStatusPartiallyDelivered,
		DeliveryStatusDelivered, DeliveryStatusMissing:
		return true
	}
	return false
}

// ProcurementType describes how an order line is fulfilled
type ProcurementType string

const (
	ProcurementExternalOrder   ProcurementType = "external_order"
	ProcurementInternalStock   ProcurementType = "internal_stock"
	ProcurementReservationOnly ProcurementType = "reservation_only"
)

// IsValid checks if the type is a valid ProcurementType
func (p ProcurementType) IsValid() bool {
	switch p {
	case ProcurementExternalOrder, ProcurementInternalStock, ProcurementReservationOnly:
		return true
	}
	return false
}

// String returns the string representation of ProcurementType
func (p ProcurementType) String() string {
	return string(p)
}

// BypassesOrdering reports whether the line is fulfilled outside the
// order/delivery funnel. Internal stock and pure reservations are always
// counted as ready.
func (p ProcurementType) BypassesOrdering() bool {
	return p == ProcurementInternalStock || p == ProcurementReservationOnly
}

// ResolveDeliveryStatus computes the canonical delivery status of an order
// line from its quantities and the previously stored status. First match wins:
//
//  1. delivered once the full required quantity has arrived
//  2. missing persists until delivery completes it
//  3. partially_delivered while anything has arrived
//  4. ordered while anything is on order, or the stored status already
//     implied an order
//  5. not_ordered otherwise
func ResolveDeliveryStatus(quantity, quantityOrdered, quantityDelivered decimal.Decimal, currentStatus DeliveryStatus) DeliveryStatus {
	required := valueobject.RequiredQuantity(quantity)
	delivered := valueobject.SanitizeQuantity(quantityDelivered)
	// Ordering can never be less than what has already arrived.
	ordered := decimal.Max(delivered, valueobject.SanitizeQuantity(quantityOrdered))

	if delivered.GreaterThanOrEqual(required) {
		return DeliveryStatusDelivered
	}

	if currentStatus == DeliveryStatusMissing {
		return DeliveryStatusMissing
	}

	if delivered.IsPositive() {
		return DeliveryStatusPartiallyDelivered
	}

	if ordered.IsPositive() || currentStatus.impliesOrdered() {
		return DeliveryStatusOrdered
	}

	return DeliveryStatusNotOrdered
}
