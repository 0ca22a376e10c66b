package workflow

import (
	"time"

	"github.com/crm/backend/internal/domain/shared/valueobject"
)

// ABTiming compares the supplier's confirmed delivery date against the goods
// receipt booking.
type ABTiming string

const (
	ABTimingOpen   ABTiming = "open"
	ABTimingOnTime ABTiming = "on_time"
	ABTimingLate   ABTiming = "late"
)

// String returns the string representation of ABTiming
func (t ABTiming) String() string {
	return string(t)
}

// ABTimingOf evaluates whether goods arrived within the date the supplier
// confirmed on the AB. Day granularity on both sides; while either date is
// missing the timing stays open.
func ABTimingOf(confirmedDeliveryDate valueobject.CivilDate, bookedAt *time.Time) ABTiming {
	if confirmedDeliveryDate.IsZero() || bookedAt == nil {
		return ABTimingOpen
	}
	booked := valueobject.CivilDateOf(*bookedAt)
	if booked.Equal(confirmedDeliveryDate) || booked.Before(confirmedDeliveryDate) {
		return ABTimingOnTime
	}
	return ABTimingLate
}
