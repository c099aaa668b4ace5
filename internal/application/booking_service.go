package application

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/peershare/service-rental/internal/apperrors"
	bookingDomain "github.com/peershare/service-rental/internal/domain/booking"
	itemDomain "github.com/peershare/service-rental/internal/domain/item"
	userDomain "github.com/peershare/service-rental/internal/domain/user"
	"github.com/peershare/service-rental/internal/events"
	"github.com/peershare/service-rental/internal/kafka"
	"github.com/peershare/service-rental/internal/localtime"
)

// CreateBookingRequest holds the data needed to create a new booking.
type CreateBookingRequest struct {
	ItemID int64                    `json:"itemId" binding:"required"`
	Start  *localtime.LocalDateTime `json:"start" binding:"required"`
	End    *localtime.LocalDateTime `json:"end" binding:"required"`
}

// BookingService is the application service orchestrating booking use cases.
type BookingService struct {
	bookings bookingDomain.Repository
	items    itemDomain.Repository
	users    userDomain.Repository
	checker  *AvailabilityChecker
	producer EventProducer
	logger   *zap.Logger
	now      func() time.Time
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings bookingDomain.Repository,
	items itemDomain.Repository,
	users userDomain.Repository,
	checker *AvailabilityChecker,
	producer EventProducer,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		items:    items,
		users:    users,
		checker:  checker,
		producer: producer,
		logger:   logger,
		now:      time.Now,
	}
}

// Create places a new WAITING booking for the given booker.
func (s *BookingService) Create(ctx context.Context, bookerID int64, req CreateBookingRequest) (*BookingDTO, error) {
	booker, err := s.users.FindByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}

	item, err := s.items.FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if item.IsOwnedBy(bookerID) {
		return nil, apperrors.NewBadRequest("owner cannot book their own item")
	}
	if !item.Available() {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("item %d is not available for booking", item.ID()))
	}

	bk, err := bookingDomain.New(req.Start.Time, req.End.Time, req.ItemID, bookerID, s.now())
	if err != nil {
		return nil, err
	}

	// Fast-fail read before the transactional check inside the repository, so
	// plainly conflicting requests never take the item row lock.
	conflict, err := s.checker.HasConflict(ctx, item.ID(), bk.Start(), bk.End())
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, apperrors.NewBadRequest("booking interval conflicts with an existing booking")
	}

	stored, err := s.bookings.CreateWithConflictCheck(ctx, bk)
	if err != nil {
		return nil, err
	}

	s.publishLifecycle(ctx, events.BookingCreated, stored, item)

	result := toBookingDTO(stored, item, booker)
	return &result, nil
}

// Decide approves or rejects a WAITING booking on behalf of the item owner.
func (s *BookingService) Decide(ctx context.Context, callerID, bookingID int64, approved bool) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	item, err := s.items.FindByID(ctx, bk.ItemID())
	if err != nil {
		return nil, err
	}
	if !item.IsOwnedBy(callerID) {
		return nil, apperrors.NewForbidden("only the item owner may decide a booking")
	}

	if err := bk.Decide(approved); err != nil {
		return nil, err
	}

	target := bookingDomain.StatusRejected
	eventType := events.BookingRejected
	if approved {
		target = bookingDomain.StatusApproved
		eventType = events.BookingApproved
	}

	// Conditional update so exactly one of several concurrent deciders wins.
	updated, err := s.bookings.UpdateStatusFromWaiting(ctx, bookingID, target)
	if err != nil {
		return nil, err
	}

	s.publishLifecycle(ctx, eventType, updated, item)

	booker, err := s.users.FindByID(ctx, updated.BookerID())
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(updated, item, booker)
	return &result, nil
}

// Cancel withdraws a WAITING booking on behalf of its booker.
func (s *BookingService) Cancel(ctx context.Context, callerID, bookingID int64) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := bk.Cancel(callerID); err != nil {
		return nil, err
	}

	updated, err := s.bookings.UpdateStatusFromWaiting(ctx, bookingID, bookingDomain.StatusCanceled)
	if err != nil {
		return nil, err
	}

	item, err := s.items.FindByID(ctx, updated.ItemID())
	if err != nil {
		return nil, err
	}
	booker, err := s.users.FindByID(ctx, updated.BookerID())
	if err != nil {
		return nil, err
	}

	s.publishLifecycle(ctx, events.BookingCanceled, updated, item)

	result := toBookingDTO(updated, item, booker)
	return &result, nil
}

// Get retrieves a single booking for its booker or the item owner.
func (s *BookingService) Get(ctx context.Context, viewerID, bookingID int64) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	item, err := s.items.FindByID(ctx, bk.ItemID())
	if err != nil {
		return nil, err
	}
	if !bk.IsViewableBy(viewerID, item.OwnerID()) {
		return nil, apperrors.NewForbidden("booking is not accessible to this user")
	}

	booker, err := s.users.FindByID(ctx, bk.BookerID())
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(bk, item, booker)
	return &result, nil
}

// ListForBooker lists the caller's own bookings under the given state filter.
func (s *BookingService) ListForBooker(ctx context.Context, bookerID int64, state string, from, size int) ([]BookingDTO, error) {
	return s.list(ctx, bookerID, bookingDomain.RoleBooker, state, from, size)
}

// ListForOwner lists bookings against the caller's items under the given
// state filter.
func (s *BookingService) ListForOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]BookingDTO, error) {
	return s.list(ctx, ownerID, bookingDomain.RoleOwner, state, from, size)
}

func (s *BookingService) list(ctx context.Context, viewerID int64, role bookingDomain.ViewerRole, state string, from, size int) ([]BookingDTO, error) {
	exists, err := s.users.ExistsByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewNotFound("User", viewerID)
	}

	st, err := bookingDomain.ParseListState(state)
	if err != nil {
		return nil, err
	}
	q, err := bookingDomain.NewViewerQuery(viewerID, role, st, s.now(), from, size)
	if err != nil {
		return nil, err
	}

	page, _, err := s.bookings.FindForViewer(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.assembleBookings(ctx, page)
}

// assembleBookings resolves item and booker references once per distinct id.
func (s *BookingService) assembleBookings(ctx context.Context, bookings []*bookingDomain.Booking) ([]BookingDTO, error) {
	itemsByID := make(map[int64]*itemDomain.Item)
	bookersByID := make(map[int64]*userDomain.User)

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		item, ok := itemsByID[bk.ItemID()]
		if !ok {
			loaded, err := s.items.FindByID(ctx, bk.ItemID())
			if err != nil {
				return nil, err
			}
			itemsByID[bk.ItemID()] = loaded
			item = loaded
		}

		booker, ok := bookersByID[bk.BookerID()]
		if !ok {
			loaded, err := s.users.FindByID(ctx, bk.BookerID())
			if err != nil {
				return nil, err
			}
			bookersByID[bk.BookerID()] = loaded
			booker = loaded
		}

		dtos[i] = toBookingDTO(bk, item, booker)
	}
	return dtos, nil
}

func (s *BookingService) publishLifecycle(ctx context.Context, eventType string, bk *bookingDomain.Booking, item *itemDomain.Item) {
	evt := events.BookingLifecycleEvent{
		BookingID:  bk.ID(),
		ItemID:     item.ID(),
		ItemName:   item.Name(),
		BookerID:   bk.BookerID(),
		OwnerID:    item.OwnerID(),
		Status:     bk.Status().String(),
		Start:      localtime.Of(bk.Start()),
		End:        localtime.Of(bk.End()),
		OccurredAt: localtime.Of(s.now()),
	}

	cloudEvent, err := kafka.NewCloudEvent(events.EventSource, eventType, evt)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	key := strconv.FormatInt(bk.ID(), 10)
	if err := s.producer.PublishEvent(ctx, events.TopicBookingEvents, key, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", events.TopicBookingEvents),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func toBookingDTO(bk *bookingDomain.Booking, item *itemDomain.Item, booker *userDomain.User) BookingDTO {
	return BookingDTO{
		ID:     bk.ID(),
		Start:  localtime.Of(bk.Start()),
		End:    localtime.Of(bk.End()),
		Status: bk.Status().String(),
		Item: ItemShortDTO{
			ID:   item.ID(),
			Name: item.Name(),
		},
		Booker: UserShortDTO{
			ID:   booker.ID(),
			Name: booker.Name(),
		},
	}
}
