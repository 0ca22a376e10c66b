package material

import (
	"sort"
	"time"

	"github.com/crm/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Risk windows for the readiness classification. These are contract, not
// tuning: dashboards and the queue router rely on the same thresholds.
const (
	// DeliveryCriticalWindowDays is the window in which undelivered material
	// makes a project critical.
	DeliveryCriticalWindowDays = 2
	// OrderingCriticalWindowDays is the window in which unordered material
	// makes a project critical.
	OrderingCriticalWindowDays = 7
	// DefaultHorizonDays is the default dashboard lookahead.
	DefaultHorizonDays = 14
)

// RiskLevel classifies how endangered a project's installation date is
type RiskLevel string

const (
	RiskCritical RiskLevel = "critical"
	RiskWarning  RiskLevel = "warning"
	RiskOK       RiskLevel = "ok"
)

// IsValid checks if the level is a valid RiskLevel
func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskCritical, RiskWarning, RiskOK:
		return true
	}
	return false
}

// String returns the string representation of RiskLevel
func (r RiskLevel) String() string {
	return string(r)
}

// Severity returns the sort rank of the level, most urgent first.
func (r RiskLevel) Severity() int {
	switch r {
	case RiskCritical:
		return 0
	case RiskWarning:
		return 1
	case RiskOK:
		return 2
	}
	return 3
}

// Project is the aggregator's input: a customer project with its installation
// date and order lines. The caller maps persistence rows into this shape; the
// engine never issues queries.
type Project struct {
	ID               uuid.UUID
	OrderNumber      string
	CustomerName     string
	InstallationDate valueobject.CivilDate
	Items            []*OrderLine
}

// ProjectMaterialSnapshot is a point-in-time, fully derived summary of how
// close a project is to being installable. It is recomputed on every read and
// never persisted.
type ProjectMaterialSnapshot struct {
	ProjectID             uuid.UUID
	OrderNumber           string
	CustomerName          string
	InstallationDate      valueobject.CivilDate
	DaysUntilInstallation int
	TotalItems            int
	FullyOrderedItems     int
	FullyDeliveredItems   int
	OpenOrderItems        int
	OpenDeliveryItems     int
	MissingItems          int
	RiskLevel             RiskLevel
}

// ProjectSnapshot computes the readiness snapshot of a project against the
// given clock. The second return value is false when the project has no
// installation date: there is nothing to schedule against.
func ProjectSnapshot(project Project, now time.Time) (*ProjectMaterialSnapshot, bool) {
	days, ok := project.InstallationDate.DaysUntil(now)
	if !ok {
		return nil, false
	}

	totalItems := len(project.Items)
	fullyOrdered := 0
	fullyDelivered := 0
	missing := 0
	for _, line := range project.Items {
		// Lagerteile und Reservierungen laufen nicht durch den
		// Bestell-/Wareneingangstrichter.
		if line.ProcurementType.BypassesOrdering() {
			fullyOrdered++
			fullyDelivered++
			continue
		}
		snap := line.Snapshot()
		if snap.IsFullyOrdered {
			fullyOrdered++
		}
		if snap.IsFullyDelivered {
			fullyDelivered++
		}
		if snap.Status == DeliveryStatusMissing {
			missing++
		}
	}

	openOrder := totalItems - fullyOrdered
	openDelivery := totalItems - fullyDelivered

	risk := RiskOK
	switch {
	case missing > 0,
		days <= DeliveryCriticalWindowDays && openDelivery > 0,
		days <= OrderingCriticalWindowDays && openOrder > 0:
		risk = RiskCritical
	case openOrder > 0, openDelivery > 0, totalItems == 0:
		// An empty order is a data-quality warning, not "ok".
		risk = RiskWarning
	}

	return &ProjectMaterialSnapshot{
		ProjectID:             project.ID,
		OrderNumber:           project.OrderNumber,
		CustomerName:          project.CustomerName,
		InstallationDate:      project.InstallationDate,
		DaysUntilInstallation: days,
		TotalItems:            totalItems,
		FullyOrderedItems:     fullyOrdered,
		FullyDeliveredItems:   fullyDelivered,
		OpenOrderItems:        openOrder,
		OpenDeliveryItems:     openDelivery,
		MissingItems:          missing,
		RiskLevel:             risk,
	}, true
}

// UpcomingSnapshots computes a snapshot per project, keeps the ones due within
// [0, horizonDays], and orders them most urgent first: risk severity, then
// days until installation, then customer name. The name tiebreak is
// locale-aware so repeated dashboard renders are stable.
func UpcomingSnapshots(projects []Project, horizonDays int, now time.Time) []*ProjectMaterialSnapshot {
	snapshots := make([]*ProjectMaterialSnapshot, 0, len(projects))
	for _, project := range projects {
		snapshot, ok := ProjectSnapshot(project, now)
		if !ok {
			continue
		}
		if snapshot.DaysUntilInstallation < 0 || snapshot.DaysUntilInstallation > horizonDays {
			continue
		}
		snapshots = append(snapshots, snapshot)
	}

	collator := collate.New(language.German)
	sort.SliceStable(snapshots, func(i, j int) bool {
		a, b := snapshots[i], snapshots[j]
		if a.RiskLevel.Severity() != b.RiskLevel.Severity() {
			return a.RiskLevel.Severity() < b.RiskLevel.Severity()
		}
		if a.DaysUntilInstallation != b.DaysUntilInstallation {
			return a.DaysUntilInstallation < b.DaysUntilInstallation
		}
		return collator.CompareString(a.CustomerName, b.CustomerName) < 0
	})

	return snapshots
}
