package booking

import (
	"context"
	"time"
)

// Repository defines the persistence contract for booking aggregates.
// Bookings are never physically deleted; terminal statuses retire them.
type Repository interface {
	// FindByID retrieves a booking by its identifier.
	FindByID(ctx context.Context, id int64) (*Booking, error)

	// CreateWithConflictCheck persists a new WAITING booking atomically with
	// respect to other creations on the same item: it locks the item row,
	// re-runs the overlap check, and inserts. Returns the stored booking with
	// its assigned id, BadRequestError on interval conflict, NotFoundError if
	// the item vanished.
	CreateWithConflictCheck(ctx context.Context, b *Booking) (*Booking, error)

	// UpdateStatusFromWaiting transitions the booking out of WAITING with a
	// conditional update, so exactly one of several concurrent deciders wins.
	// The loser receives BadRequestError; a missing booking, NotFoundError.
	UpdateStatusFromWaiting(ctx context.Context, id int64, to Status) (*Booking, error)

	// HasOverlapping reports whether any booking of the item whose status
	// blocks availability intersects [start, end).
	HasOverlapping(ctx context.Context, itemID int64, start, end time.Time) (bool, error)

	// FindForViewer resolves a viewer-scoped semantic listing into an ordered
	// page plus the total count for that viewer, role and state.
	FindForViewer(ctx context.Context, q ViewerQuery) ([]*Booking, int64, error)

	// FindLastAndNext returns the item's most recent approved booking that has
	// started and the nearest approved booking yet to start. Either may be nil.
	FindLastAndNext(ctx context.Context, itemID int64, now time.Time) (*Booking, *Booking, error)

	// HasCompletedBooking reports whether the user has an approved booking of
	// the item whose end is already in the past.
	HasCompletedBooking(ctx context.Context, itemID, userID int64, now time.Time) (bool, error)

	// HasActiveByBooker reports whether the user has a WAITING booking or an
	// approved booking that has not yet ended.
	HasActiveByBooker(ctx context.Context, userID int64, now time.Time) (bool, error)
}
