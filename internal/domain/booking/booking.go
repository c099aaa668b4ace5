// Package booking holds the booking aggregate, its status state machine,
// and the semantic listing filters.
package booking

import (
	"time"

	"github.com/peershare/service-rental/internal/apperrors"
)

// Booking is the aggregate root for the booking domain. Its interval is
// half-open: [start, end).
type Booking struct {
	id       int64
	start    time.Time
	end      time.Time
	itemID   int64
	bookerID int64
	status   Status

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// New creates a booking request in WAITING status. The id is zero until the
// store assigns one.
func New(start, end time.Time, itemID, bookerID int64, now time.Time) (*Booking, error) {
	if itemID <= 0 {
		return nil, apperrors.NewBadRequest("item id is required")
	}
	if bookerID <= 0 {
		return nil, apperrors.NewBadRequest("booker id is required")
	}
	if start.IsZero() || end.IsZero() {
		return nil, apperrors.NewBadRequest("booking start and end are required")
	}
	if !start.Before(end) {
		return nil, apperrors.NewBadRequest("booking end must be strictly after start")
	}
	if start.Before(now) {
		return nil, apperrors.NewBadRequest("booking start must not be in the past")
	}

	return &Booking{
		start:     start,
		end:       end,
		itemID:    itemID,
		bookerID:  bookerID,
		status:    StatusWaiting,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(
	id int64,
	start, end time.Time,
	itemID, bookerID int64,
	status Status,
	version int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		start:     start,
		end:       end,
		itemID:    itemID,
		bookerID:  bookerID,
		status:    status,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// --- Getters ---

// ID returns the store-assigned identifier.
func (b *Booking) ID() int64 { return b.id }

// Start returns the inclusive start of the interval.
func (b *Booking) Start() time.Time { return b.start }

// End returns the exclusive end of the interval.
func (b *Booking) End() time.Time { return b.end }

// ItemID returns the booked item's id.
func (b *Booking) ItemID() int64 { return b.itemID }

// BookerID returns the requesting user's id.
func (b *Booking) BookerID() int64 { return b.bookerID }

// Status returns the current lifecycle status.
func (b *Booking) Status() Status { return b.status }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// --- Behavior ---

// Decide resolves a WAITING booking to APPROVED or REJECTED. Anything other
// than WAITING is terminal and fails.
func (b *Booking) Decide(approved bool) error {
	target := StatusRejected
	if approved {
		target = StatusApproved
	}
	if !b.status.CanTransitionTo(target) {
		return apperrors.NewBadRequest("booking is no longer waiting for approval")
	}
	b.status = target
	b.touch()
	return nil
}

// Cancel withdraws a WAITING booking. Only the original booker may cancel.
func (b *Booking) Cancel(callerID int64) error {
	if callerID != b.bookerID {
		return apperrors.NewForbidden("only the booker may cancel this booking")
	}
	if !b.status.CanTransitionTo(StatusCanceled) {
		return apperrors.NewBadRequest("booking is no longer waiting and cannot be canceled")
	}
	b.status = StatusCanceled
	b.touch()
	return nil
}

// IsViewableBy reports whether the user may read this booking: only the
// booker and the item's owner.
func (b *Booking) IsViewableBy(userID, itemOwnerID int64) bool {
	return userID == b.bookerID || userID == itemOwnerID
}

// IsCompletedBy reports whether the user had this booking approved and the
// rental window has fully elapsed. Completed bookings entitle the booker to
// comment on the item.
func (b *Booking) IsCompletedBy(userID int64, now time.Time) bool {
	return b.bookerID == userID && b.status == StatusApproved && b.end.Before(now)
}

// OverlapsInterval reports whether this booking's interval intersects
// [start, end).
func (b *Booking) OverlapsInterval(start, end time.Time) bool {
	return Overlaps(b.start, b.end, start, end)
}

func (b *Booking) touch() {
	b.version++
	b.updatedAt = time.Now().UTC()
}
