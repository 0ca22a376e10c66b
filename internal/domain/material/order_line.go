package material

import (
	"github.com/crm/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLine represents a single project position in the procurement funnel.
// Quantities are mutated only through Apply, never by direct field assignment,
// so QuantityDelivered <= QuantityOrdered holds after every update.
type OrderLine struct {
	ID                   uuid.UUID
	SupplierID           *uuid.UUID
	Description          string
	Unit                 string
	Quantity             decimal.Decimal
	QuantityOrdered      decimal.Decimal
	QuantityDelivered    decimal.Decimal
	DeliveryStatus       DeliveryStatus
	ProcurementType      ProcurementType
	ExpectedDeliveryDate valueobject.CivilDate
	ActualDeliveryDate   valueobject.CivilDate
}

// NewOrderLine creates a new order line with nothing ordered or delivered yet
func NewOrderLine(id uuid.UUID, description string, quantity decimal.Decimal) *OrderLine {
	return &OrderLine{
		ID:                id,
		Description:       description,
		Unit:              "Stk",
		Quantity:          valueobject.RequiredQuantity(quantity),
		QuantityOrdered:   decimal.Zero,
		QuantityDelivered: decimal.Zero,
		DeliveryStatus:    DeliveryStatusNotOrdered,
		ProcurementType:   ProcurementExternalOrder,
	}
}

// LinePatch is a partial update to an order line: a status intent and/or new
// quantities. Nil fields keep the current value.
type LinePatch struct {
	Status               *DeliveryStatus
	QuantityOrdered      *decimal.Decimal
	QuantityDelivered    *decimal.Decimal
	ExpectedDeliveryDate *valueobject.CivilDate
	ActualDeliveryDate   *valueobject.CivilDate
}

// Apply reconciles a patch into a consistent quantity/status/date tuple and
// mutates the line accordingly. The requested status is an intent, not a
// verdict: quantities are clamped to match it, then the final status is
// re-derived from the resulting quantities, so a caller can never store a
// status inconsistent with the numbers.
//
// Dirty numeric input is coerced, never rejected: the engine must not fail on
// legacy rows.
func (l *OrderLine) Apply(patch LinePatch) {
	quantity := valueobject.RequiredQuantity(l.Quantity)

	delivered := valueobject.SanitizeQuantity(l.QuantityDelivered)
	if patch.QuantityDelivered != nil {
		delivered = valueobject.SanitizeQuantity(*patch.QuantityDelivered)
	}
	rawOrdered := valueobject.SanitizeQuantity(l.QuantityOrdered)
	if patch.QuantityOrdered != nil {
		rawOrdered = valueobject.SanitizeQuantity(*patch.QuantityOrdered)
	}
	ordered := decimal.Max(delivered, rawOrdered)

	requested := l.DeliveryStatus
	if patch.Status != nil {
		requested = *patch.Status
	}

	switch requested {
	case DeliveryStatusNotOrdered:
		if !delivered.IsPositive() {
			ordered = decimal.Zero
		}
	case DeliveryStatusOrdered:
		if !ordered.IsPositive() {
			ordered = quantity
		}
	case DeliveryStatusPartiallyDelivered:
		// A partial delivery is at least a trace quantity and at most the
		// full requirement.
		minPartial := decimal.Min(quantity, decimal.Max(decimal.NewFromFloat(0.01), delivered))
		delivered = minPartial
		ordered = decimal.Max(ordered, minPartial)
	case DeliveryStatusDelivered:
		delivered = decimal.Max(delivered, quantity)
		ordered = decimal.Max(ordered, delivered)
	case DeliveryStatusMissing:
		// A missing line was supposed to be fully ordered.
		ordered = decimal.Max(ordered, quantity)
	}

	status := ResolveDeliveryStatus(quantity, ordered, delivered, requested)

	expected := l.ExpectedDeliveryDate
	if patch.ExpectedDeliveryDate != nil {
		expected = *patch.ExpectedDeliveryDate
	}
	if status == DeliveryStatusNotOrdered {
		expected = valueobject.CivilDate{}
	}

	actual := l.ActualDeliveryDate
	if patch.ActualDeliveryDate != nil {
		actual = *patch.ActualDeliveryDate
	}
	if !delivered.IsPositive() {
		actual = valueobject.CivilDate{}
	}

	l.QuantityOrdered = valueobject.RoundQuantity(ordered)
	l.QuantityDelivered = valueobject.RoundQuantity(delivered)
	l.DeliveryStatus = status
	l.ExpectedDeliveryDate = expected
	l.ActualDeliveryDate = actual
}

// ItemSnapshot is the fully derived per-line view of the procurement funnel.
type ItemSnapshot struct {
	Quantity             decimal.Decimal
	OrderedQuantity      decimal.Decimal
	DeliveredQuantity    decimal.Decimal
	OpenOrderQuantity    decimal.Decimal
	OpenDeliveryQuantity decimal.Decimal
	Status               DeliveryStatus
	IsFullyOrdered       bool
	IsFullyDelivered     bool
	ExpectedDeliveryDate valueobject.CivilDate
	ActualDeliveryDate   valueobject.CivilDate
	// Suspect reports that raw quantities were negative and had to be
	// coerced. The derivation stays permissive; this is a data-quality hint
	// for the caller.
	Suspect bool
}

// Snapshot derives the current material view of the line. The stored status
// is only consulted where it carries information the quantities cannot:
// the ordered-by-status floor and the one-way missing flag.
func (l *OrderLine) Snapshot() ItemSnapshot {
	suspect := l.Quantity.IsNegative() || l.QuantityOrdered.IsNegative() || l.QuantityDelivered.IsNegative()

	quantity := valueobject.RequiredQuantity(l.Quantity)
	delivered := valueobject.SanitizeQuantity(l.QuantityDelivered)

	orderedByStatus := decimal.Zero
	if l.DeliveryStatus.impliesOrdered() {
		orderedByStatus = quantity
	}
	ordered := decimal.Max(delivered, decimal.Max(valueobject.SanitizeQuantity(l.QuantityOrdered), orderedByStatus))

	status := ResolveDeliveryStatus(quantity, ordered, delivered, l.DeliveryStatus)

	openOrder := valueobject.RoundQuantity(quantity.Sub(ordered))
	if openOrder.IsNegative() {
		openOrder = decimal.Zero
	}
	openDelivery := valueobject.RoundQuantity(quantity.Sub(delivered))
	if openDelivery.IsNegative() {
		openDelivery = decimal.Zero
	}

	return ItemSnapshot{
		Quantity:             quantity,
		OrderedQuantity:      valueobject.RoundQuantity(ordered),
		DeliveredQuantity:    valueobject.RoundQuantity(delivered),
		OpenOrderQuantity:    openOrder,
		OpenDeliveryQuantity: openDelivery,
		Status:               status,
		IsFullyOrdered:       !openOrder.IsPositive(),
		IsFullyDelivered:     !openDelivery.IsPositive(),
		ExpectedDeliveryDate: l.ExpectedDeliveryDate,
		ActualDeliveryDate:   l.ActualDeliveryDate,
		Suspect:              suspect,
	}
}
