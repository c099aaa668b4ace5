package application

import (
	"context"
	"time"

	bookingDomain "github.com/peershare/service-rental/internal/domain/booking"
	itemDomain "github.com/peershare/service-rental/internal/domain/item"
)

// AvailabilityChecker answers whether a candidate [start, end) interval
// collides with any booking of the item that still blocks availability.
// It is read-only; a conflict is a boolean answer, never an error.
type AvailabilityChecker struct {
	bookings bookingDomain.Repository
	items    itemDomain.Repository
}

// NewAvailabilityChecker creates a new AvailabilityChecker.
func NewAvailabilityChecker(bookings bookingDomain.Repository, items itemDomain.Repository) *AvailabilityChecker {
	return &AvailabilityChecker{
		bookings: bookings,
		items:    items,
	}
}

// HasConflict reports whether any WAITING or APPROVED booking of the item
// intersects [start, end). Returns NotFoundError if the item does not exist.
func (c *AvailabilityChecker) HasConflict(ctx context.Context, itemID int64, start, end time.Time) (bool, error) {
	if _, err := c.items.FindByID(ctx, itemID); err != nil {
		return false, err
	}
	return c.bookings.HasOverlapping(ctx, itemID, start, end)
}
