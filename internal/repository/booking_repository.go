package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/peershare/service-rental/internal/apperrors"
	bookingDomain "github.com/peershare/service-rental/internal/domain/booking"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	StartTime time.Time `gorm:"not null;index:idx_bookings_start"`
	EndTime   time.Time `gorm:"not null"`
	ItemID    int64     `gorm:"not null;index"`
	BookerID  int64     `gorm:"not null;index"`
	Status    string    `gorm:"not null;size:10;index"`
	Version   int64     `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// blockingStatuses are the statuses that occupy an interval for conflict checks.
var blockingStatuses = []string{
	string(bookingDomain.StatusWaiting),
	string(bookingDomain.StatusApproved),
}

// GormBookingRepository is the GORM-based implementation of booking.Repository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id int64) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Booking", id)
		}
		return nil, fmt.Errorf("failed to find booking by id: %w", err)
	}
	return toDomainBooking(&model)
}

// CreateWithConflictCheck locks the item row, re-runs the overlap check, and
// inserts the booking, all inside one transaction. Two concurrent creations
// on the same item serialize on the row lock, so a stale conflict read can
// never let both through.
func (r *GormBookingRepository) CreateWithConflictCheck(ctx context.Context, b *bookingDomain.Booking) (*bookingDomain.Booking, error) {
	model := toBookingModel(b)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var itm ItemModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", b.ItemID()).
			First(&itm).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("Item", b.ItemID())
			}
			return fmt.Errorf("failed to lock item row: %w", err)
		}

		var conflicts int64
		if err := tx.Model(&BookingModel{}).
			Where("item_id = ? AND status IN ? AND start_time < ? AND ? < end_time",
				b.ItemID(), blockingStatuses, b.End(), b.Start()).
			Count(&conflicts).Error; err != nil {
			return fmt.Errorf("failed to check booking conflicts: %w", err)
		}
		if conflicts > 0 {
			return apperrors.NewBadRequest("booking interval conflicts with an existing booking")
		}

		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to save booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toDomainBooking(model)
}

// UpdateStatusFromWaiting performs the compare-and-set on status: the update
// only applies while the row is still WAITING, so of two concurrent deciders
// exactly one wins and the other fails.
func (r *GormBookingRepository) UpdateStatusFromWaiting(ctx context.Context, id int64, to bookingDomain.Status) (*bookingDomain.Booking, error) {
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND status = ?", id, string(bookingDomain.StatusWaiting)).
		Updates(map[string]interface{}{
			"status":     string(to),
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		// Either the booking is gone or someone else already decided it.
		var model BookingModel
		if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NewNotFound("Booking", id)
			}
			return nil, fmt.Errorf("failed to reload booking: %w", err)
		}
		return nil, apperrors.NewBadRequest("booking is no longer waiting for approval")
	}

	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, fmt.Errorf("failed to reload booking: %w", err)
	}
	return toDomainBooking(&model)
}

// HasOverlapping reports whether any blocking booking of the item intersects
// [start, end), using the symmetric half-open test.
func (r *GormBookingRepository) HasOverlapping(ctx context.Context, itemID int64, start, end time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Where("item_id = ? AND status IN ? AND start_time < ? AND ? < end_time",
			itemID, blockingStatuses, end, start).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check overlapping bookings: %w", err)
	}
	return count > 0, nil
}

// FindForViewer resolves a semantic listing into a page plus the total count
// for that viewer, role and state. Both queries share the same scope so
// successive pages never skip or duplicate rows.
func (r *GormBookingRepository) FindForViewer(ctx context.Context, q bookingDomain.ViewerQuery) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.viewerScope(ctx, q).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count viewer bookings: %w", err)
	}

	var models []BookingModel
	if err := r.viewerScope(ctx, q).
		Order("bookings.start_time DESC, bookings.id DESC").
		Offset(q.From).
		Limit(q.Size).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find viewer bookings: %w", err)
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		b, err := toDomainBooking(&m)
		if err != nil {
			return nil, 0, err
		}
		bookings[i] = b
	}
	return bookings, total, nil
}

// viewerScope builds the WHERE clause for one of the nine list variants:
// role (booker vs. owner join) times semantic state. Owner-scoped variants
// always carry the ownership join, including WAITING and REJECTED.
func (r *GormBookingRepository) viewerScope(ctx context.Context, q bookingDomain.ViewerQuery) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&BookingModel{})

	switch q.Role {
	case bookingDomain.RoleOwner:
		db = db.Joins("JOIN items ON items.id = bookings.item_id").
			Where("items.owner_id = ?", q.ViewerID)
	default:
		db = db.Where("bookings.booker_id = ?", q.ViewerID)
	}

	switch q.State {
	case bookingDomain.StateCurrent:
		db = db.Where("bookings.start_time <= ? AND bookings.end_time > ?", q.Now, q.Now)
	case bookingDomain.StatePast:
		db = db.Where("bookings.status <> ? AND bookings.end_time < ?",
			string(bookingDomain.StatusRejected), q.Now)
	case bookingDomain.StateFuture:
		db = db.Where("bookings.start_time > ?", q.Now)
	case bookingDomain.StateWaiting:
		db = db.Where("bookings.status = ?", string(bookingDomain.StatusWaiting))
	case bookingDomain.StateRejected:
		db = db.Where("bookings.status = ?", string(bookingDomain.StatusRejected))
	}

	return db
}

// FindLastAndNext returns the item's most recent approved booking already
// started and the nearest approved booking yet to start.
func (r *GormBookingRepository) FindLastAndNext(ctx context.Context, itemID int64, now time.Time) (*bookingDomain.Booking, *bookingDomain.Booking, error) {
	approved := string(bookingDomain.StatusApproved)

	var lastModel BookingModel
	last, err := r.firstOrNil(
		r.db.WithContext(ctx).
			Where("item_id = ? AND status = ? AND start_time <= ?", itemID, approved, now).
			Order("start_time DESC"),
		&lastModel,
	)
	if err != nil {
		return nil, nil, err
	}

	var nextModel BookingModel
	next, err := r.firstOrNil(
		r.db.WithContext(ctx).
			Where("item_id = ? AND status = ? AND start_time > ?", itemID, approved, now).
			Order("start_time ASC"),
		&nextModel,
	)
	if err != nil {
		return nil, nil, err
	}

	return last, next, nil
}

func (r *GormBookingRepository) firstOrNil(query *gorm.DB, model *BookingModel) (*bookingDomain.Booking, error) {
	if err := query.First(model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query booking: %w", err)
	}
	return toDomainBooking(model)
}

// HasCompletedBooking reports whether the user has an approved booking of
// the item whose end is already in the past.
func (r *GormBookingRepository) HasCompletedBooking(ctx context.Context, itemID, userID int64, now time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Where("item_id = ? AND booker_id = ? AND status = ? AND end_time < ?",
			itemID, userID, string(bookingDomain.StatusApproved), now).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check completed bookings: %w", err)
	}
	return count > 0, nil
}

// HasActiveByBooker reports whether the user has a WAITING booking or an
// approved booking that has not yet ended.
func (r *GormBookingRepository) HasActiveByBooker(ctx context.Context, userID int64, now time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Where("booker_id = ? AND (status = ? OR (status = ? AND end_time > ?))",
			userID, string(bookingDomain.StatusWaiting), string(bookingDomain.StatusApproved), now).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check active bookings: %w", err)
	}
	return count > 0, nil
}

// --- Conversion helpers ---

func toBookingModel(b *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:        b.ID(),
		StartTime: b.Start(),
		EndTime:   b.End(),
		ItemID:    b.ItemID(),
		BookerID:  b.BookerID(),
		Status:    string(b.Status()),
		Version:   b.Version(),
		CreatedAt: b.CreatedAt(),
		UpdatedAt: b.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseStatus(m.Status)
	if err != nil {
		return nil, err
	}
	return bookingDomain.Reconstruct(
		m.ID,
		m.StartTime,
		m.EndTime,
		m.ItemID,
		m.BookerID,
		status,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}
