package workflow

// OrderStatus represents the status of a supplier order document
type OrderStatus string

const (
	OrderStatusDraft                OrderStatus = "draft"
	OrderStatusPendingApproval      OrderStatus = "pending_approval"
	OrderStatusSent                 OrderStatus = "sent"
	OrderStatusABReceived           OrderStatus = "ab_received"
	OrderStatusDeliveryNoteReceived OrderStatus = "delivery_note_received"
	OrderStatusGoodsReceiptOpen     OrderStatus = "goods_receipt_open"
	OrderStatusGoodsReceiptBooked   OrderStatus = "goods_receipt_booked"
	OrderStatusReadyForInstallation OrderStatus = "ready_for_installation"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusPendingApproval, OrderStatusSent,
		OrderStatusABReceived, OrderStatusDeliveryNoteReceived,
		OrderStatusGoodsReceiptOpen, OrderStatusGoodsReceiptBooked,
		OrderStatusReadyForInstallation:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// AtLeastSent reports whether the status is at or past "sent"
func (s OrderStatus) AtLeastSent() bool {
	switch s {
	case OrderStatusSent, OrderStatusABReceived, OrderStatusDeliveryNoteReceived,
		OrderStatusGoodsReceiptOpen, OrderStatusGoodsReceiptBooked,
		OrderStatusReadyForInstallation:
		return true
	}
	return false
}

// ReservationStatus represents the status of an installation reservation
type ReservationStatus string

const (
	ReservationStatusDraft     ReservationStatus = "draft"
	ReservationStatusRequested ReservationStatus = "requested"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// IsValid checks if the status is a valid ReservationStatus
func (s ReservationStatus) IsValid() bool {
	switch s {
	case ReservationStatusDraft, ReservationStatusRequested,
		ReservationStatusConfirmed, ReservationStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of ReservationStatus
func (s ReservationStatus) String() string {
	return string(s)
}
