package workflow

import "strings"

// Queue is the operational queue a supplier order currently belongs in.
// Queue membership is mutually exclusive and total: every snapshot maps to
// exactly one queue.
type Queue string

const (
	QueueZuBestellen       Queue = "zu_bestellen"
	QueueBrennt            Queue = "brennt"
	QueueABFehlt           Queue = "ab_fehlt"
	QueueWareneingangOffen Queue = "wareneingang_offen"
	QueueReservierungOffen Queue = "reservierung_offen"
	QueueMontagebereit     Queue = "montagebereit"
	QueueErledigt          Queue = "erledigt"
)

type queueMeta struct {
	label   string
	urgency int
}

// The urgency rank orders worklists for operators; it never participates in
// routing decisions.
var queueMetaByQueue = map[Queue]queueMeta{
	QueueBrennt:            {label: "Brennt", urgency: 0},
	QueueZuBestellen:       {label: "Zu bestellen", urgency: 1},
	QueueABFehlt:           {label: "AB fehlt", urgency: 2},
	QueueWareneingangOffen: {label: "Wareneingang offen", urgency: 3},
	QueueReservierungOffen: {label: "Reservierung offen", urgency: 4},
	QueueMontagebereit:     {label: "Montagebereit", urgency: 5},
	QueueErledigt:          {label: "Erledigt", urgency: 6},
}

// Queues returns all queues in urgency order.
func Queues() []Queue {
	return []Queue{
		QueueBrennt,
		QueueZuBestellen,
		QueueABFehlt,
		QueueWareneingangOffen,
		QueueReservierungOffen,
		QueueMontagebereit,
		QueueErledigt,
	}
}

// IsValid checks if the value is a valid Queue
func (q Queue) IsValid() bool {
	_, ok := queueMetaByQueue[q]
	return ok
}

// String returns the string representation of Queue
func (q Queue) String() string {
	return string(q)
}

// Label returns the operator-facing display label
func (q Queue) Label() string {
	if meta, ok := queueMetaByQueue[q]; ok {
		return meta.label
	}
	return string(q)
}

// Urgency returns the worklist sort rank, most urgent first.
func (q Queue) Urgency() int {
	if meta, ok := queueMetaByQueue[q]; ok {
		return meta.urgency
	}
	return len(queueMetaByQueue)
}

// Param returns the stable URL token for the queue (hyphenated lowercase).
func (q Queue) Param() string {
	return strings.ReplaceAll(string(q), "_", "-")
}

// Tokens from earlier releases of the worklist that still appear in saved
// links.
var legacyQueueParams = map[string]Queue{
	"lieferant_fehlt": QueueZuBestellen,
	"lieferschein_da": QueueWareneingangOffen,
}

// QueueFromParam parses a URL token back into a Queue. Unrecognized tokens
// return false and mean "no filter", never an error.
func QueueFromParam(value string) (Queue, bool) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), "-", "_")
	if normalized == "" {
		return "", false
	}
	if queue, ok := legacyQueueParams[normalized]; ok {
		return queue, true
	}
	queue := Queue(normalized)
	if queue.IsValid() {
		return queue, true
	}
	return "", false
}
