package availability

import (
	"backoffice-service/internal/module/booking/models/entity"
	"fmt"
	"time"
)

// Window is a half-open [Start, End) reservation interval.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Valid() bool {
	return w.End.After(w.Start)
}

// Overlaps reports whether two half-open windows intersect. A window
// fully nested inside another counts, and back-to-back windows sharing
// a boundary instant do not.
func Overlaps(a, b Window) bool {
	return a.Start.Before(b.End) && a.End.After(b.Start)
}

// HallBookable returns the reasons a hall cannot take bookings at all,
// independent of any particular window.
func HallBookable(hall entity.Hall) []string {
	var reasons []string
	if hall.Status != entity.HallAvailable {
		reasons = append(reasons, fmt.Sprintf("hall %q is %s", hall.Name, hall.Status))
	}
	if !hall.EnableBooking {
		reasons = append(reasons, fmt.Sprintf("hall %q is not accepting bookings", hall.Name))
	}
	if hall.DeletedAt.Valid {
		reasons = append(reasons, fmt.Sprintf("hall %q no longer exists", hall.Name))
	}
	return reasons
}

// TicketsSellable returns the reasons a quantity cannot be sold from a
// ticket class at the given instant: inactive class, unpublished event,
// sale window closed or not yet open, event already started, or not
// enough remaining inventory.
func TicketsSellable(class entity.TicketClass, quantity int, at time.Time) []string {
	var reasons []string

	if !class.IsActive {
		reasons = append(reasons, fmt.Sprintf("ticket class %q is not active", class.Name))
	}
	if !class.EventPublished {
		reasons = append(reasons, fmt.Sprintf("event %q is not published", class.EventName))
	}
	if class.SaleStarts.Valid && at.Before(class.SaleStarts.Time) {
		reasons = append(reasons, fmt.Sprintf("ticket class %q sale has not started", class.Name))
	}
	if class.SaleEnds.Valid && !at.Before(class.SaleEnds.Time) {
		reasons = append(reasons, fmt.Sprintf("ticket class %q sale has ended", class.Name))
	}
	if !at.Before(class.EventStarts) {
		reasons = append(reasons, fmt.Sprintf("event %q has already started", class.EventName))
	}
	if remaining := class.Remaining(); remaining < quantity {
		reasons = append(reasons, fmt.Sprintf("ticket class %q has %d remaining, %d requested", class.Name, remaining, quantity))
	}

	return reasons
}
