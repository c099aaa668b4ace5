package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/peershare/service-rental/internal/apperrors"
	bookingDomain "github.com/peershare/service-rental/internal/domain/booking"
	itemDomain "github.com/peershare/service-rental/internal/domain/item"
	userDomain "github.com/peershare/service-rental/internal/domain/user"
	"github.com/peershare/service-rental/internal/events"
	"github.com/peershare/service-rental/internal/localtime"
)

var (
	svcNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	ownerUser  = userDomain.Reconstruct(1, "Alice", "alice@example.com", svcNow, svcNow)
	bookerUser = userDomain.Reconstruct(2, "Bob", "bob@example.com", svcNow, svcNow)
)

func availableItem() *itemDomain.Item {
	return itemDomain.Reconstruct(10, "Drill", "Cordless power drill", true, 1, nil, svcNow, svcNow)
}

func waitingBooking() *bookingDomain.Booking {
	return bookingDomain.Reconstruct(
		100,
		svcNow.Add(time.Hour), svcNow.Add(2*time.Hour),
		10, 2,
		bookingDomain.StatusWaiting,
		1,
		svcNow, svcNow,
	)
}

func newBookingService(
	bookings *MockBookingRepository,
	items *MockItemRepository,
	users *MockUserRepository,
	producer *MockEventProducer,
) *BookingService {
	checker := NewAvailabilityChecker(bookings, items)
	svc := NewBookingService(bookings, items, users, checker, producer, zap.NewNop())
	svc.now = func() time.Time { return svcNow }
	return svc
}

func TestBookingService_Create_Success(t *testing.T) {
	bookings := &MockBookingRepository{}
	items := &MockItemRepository{}
	users := &MockUserRepository{}
	producer := &MockEventProducer{}
	svc := newBookingService(bookings, items, users, producer)

	start := svcNow.Add(time.Hour)
	end := svcNow.Add(2 * time.Hour)

	users.On("FindByID", mock.Anything, int64(2)).Return(bookerUser, nil)
	items.On("FindByID", mock.Anything, int64(10)).Return(availableItem(), nil)
	bookings.On("HasOverlapping", mock.Anything, int64(10), start, end).Return(false, nil)
	bookings.On("CreateWithConflictCheck", mock.Anything, mock.Anything).Return(waitingBooking(), nil)
	producer.On("PublishEvent", mock.Anything, events.TopicBookingEvents, "100", mock.Anything).Return(nil)

	startDT := localtime.Of(start)
	endDT := localtime.Of(end)
	result, err := svc.Create(context.Background(), 2, CreateBookingRequest{
		ItemID: 10,
		Start:  &startDT,
		End:    &endDT,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(100), result.ID)
	assert.Equal(t, "WAITING", result.Status)
	assert.Equal(t, "Drill", result.Item.Name)
	assert.Equal(t, "Bob", result.Booker.Name)
	producer.AssertExpectations(t)
}

func TestBookingService_Create_SelfBooking(t *testing.T) {
	bookings := &MockBookingRepository{}
	items := &MockItemRepository{}
	users := &MockUserRepository{}
	svc := newBookingService(bookings, items, users, &MockEventProducer{})

	users.On("FindByID", mock.Anything, int64(1)).Return(ownerUser, nil)
	items.On("FindByID", mock.Anything, int64(10)).Return(availableItem(), nil)

	startDT := localtime.Of(svcNow.Add(time.Hour))
	endDT := localtime.Of(svcNow.Add(2 * time.Hour))
	_, err := svc.Create(context.Background(), 1, CreateBookingRequest{ItemID: 10, Start: &startDT, End: &endDT})

	var badReq *apperrors.BadRequestError
	assert.True(t, errors.As(err, &badReq))
	bookings.AssertNotCalled(t, "CreateWithConflictCheck", mock.Anything, mock.Anything)
}

func TestBookingService_Create_UnavailableItem(t *testing.T) {
	bookings := &MockBookingRepository{}
	items := &MockItemRepository{}
	users := &MockUserRepository{}
	svc := newBookingService(bookings, items, users, &MockEventProducer{})

	unavailable := itemDomain.Reconstruct(10, "Drill", "Cordless power drill", false, 1, nil, svcNow, svcNow)
	users.On("FindByID", mock.Anything, int64(2)).Return(bookerUser, nil)
	items.On("FindByID", mock.Anything, int64(10)).Return(unavailable, nil)

	startDT := localtime.Of(svcNow.Add(time.Hour))
	endDT := localtime.Of(svcNow.Add(2 * time.Hour))
	_, err := svc.Create(context.Background(), 2, CreateBookingRequest{ItemID: 10, Start: &startDT, End: &endDT})

	var badReq *apperrors.BadRequestError
	assert.True(t, errors.As(err, &badReq))
}

func TestBookingService_Create_Conflict(t *testing.T) {
	bookings := &MockBookingRepository{}
	items := &MockItemRepository{}
	users := &MockUserRepository{}
	svc := newBookingService(bookings, items, users, &MockEventProducer{})

	start := svcNow.Add(time.Hour)
	end := svcNow.Add(2 * time.Hour)
	users.On("FindByID", mock.Anything, int64(2)).Return(bookerUser, nil)
	items.On("FindByID", mock.Anything, int64(10)).Return(availableItem(), nil)
	bookings.On("HasOverlapping", mock.Anything, int64(10), start, end).Return(true, nil)

	startDT := localtime.Of(start)
	endDT := localtime.Of(end)
	_, err := svc.Create(context.Background(), 2, CreateBookingRequest{ItemID: 10, Start: &startDT, End: &endDT})

	var badReq *apperrors.BadRequestError
	assert.True(t, errors.As(err, &badReq))
	bookings.AssertNotCalled(t, "CreateWithConflictCheck", mock.Anything, mock.Anything)
}

func TestBookingService_Create_EmptyInterval(t *testing.T) {
	bookings := &MockBookingRepository{}
	items := &MockItemRepository{}
	users := &MockUserRepository{}
	svc := newBookingService(bookings, items, users, &MockEventProducer{})

	users.On("FindByID", mock.Anything, int64(2)).Return(bookerUser, nil)
	items.On("FindByID", mock.Anything, int64(10)).Return(availableItem(), nil)

	same := localtime.Of(svcNow.Add(time.Hour))
	_, err := svc.Create(context.Background(), 2, CreateBookingRequest{ItemID: 10, Start: &same, End: &same})

	var badReq *apperrors.BadRequestError
	assert.True(t, errors.As(err, &badReq))
}

func TestBookingService_Decide_Approve(t *testing.T) {
	bookings := &MockBookingRepository{}
	items := &MockItemRepository{}
	users := &MockUserRepository{}
	producer := &MockEventProducer{}
	svc := newBookingService(bookings, items, users, producer)

	approved := bookingDomain.Reconstruct(
		100, svcNow.Add(time.Hour), svcNow.Add(2*time.Hour), 10, 2,
		bookingDomain.StatusApproved, 2, svcNow, svcNow,
	)

	bookings.On("FindByID", mock.Anything, int64(100)).Return(waitingBooking(), nil)
	items.On("FindByID", mock.Anything, int64(10)).Return(availableItem(), nil)
	bookings.On("UpdateStatusFromWaiting", mock.Anything, int64(100), bookingDomain.StatusApproved).
		Return(approved, nil)
	users.On("FindByID", mock.Anything, int64(2)).Return(bookerUser, nil)
	producer.On("PublishEvent", mock.Anything, events.TopicBookingEvents, "100", mock.Anything).Return(nil)

	result, err := svc.Decide(context.Background(), 1, 100, true)

	require.NoError(t, err)
	assert.Equal(t, "APPROVED", result.Status)
}

func TestBookingService_Decide_NotOwner(t *testing.T) {
	bookings := &MockBookingRepository{}
	items := &MockItemRepository{}
	users := &MockUserRepository{}
	svc := newBookingService(bookings, items, users, &MockEventProducer{})

	bookings.On("FindByID", mock.Anything, int64(100)).Return(waitingBooking(), nil)
	items.On("FindByID", mock.Anything, int64(10)).Return(availableItem(), nil)

	_, err := svc.Decide(context.Background(), 2, 100, true)

	var forbidden *apperrors.ForbiddenError
	assert.True(t, errors.As(err, &forbidden))
	bookings.AssertNotCalled(t, "UpdateStatusFromWaiting", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_Decide_AlreadyDecided(t *testing.T) {
	bookings := &MockBookingRepository{}
	items := &MockItemRepository{}
	users := &MockUserRepository{}
	svc := newBookingService(bookings, items, users, &MockEventProducer{})

	decided := bookingDomain.Reconstruct(
		100, svcNow.Add(time.Hour), svcNow.Add(2*time.Hour), 10, 2,
		bookingDomain.StatusApproved, 2, svcNow, svcNow,
	)
	bookings.On("FindByID", mock.Anything, int64(100)).Return(decided, nil)
	items.On("FindByID", mock.Anything, int64(10)).Return(availableItem(), nil)

	_, err := svc.Decide(context.Background(), 1, 100, false)

	var badReq *apperrors.BadRequestError
	assert.True(t, errors.As(err, &badReq))
}

func TestBookingService_Decide_ConcurrentLoser(t *testing.T) {
	bookings := &MockBookingRepository{}
	items := &MockItemRepository{}
	users := &MockUserRepository{}
	svc := newBookingService(bookings, items, users, &MockEventProducer{})

	// The booking still reads as WAITING, but another decider wins the
	// conditional update first.
	bookings.On("FindByID", mock.Anything, int64(100)).Return(waitingBooking(), nil)
	items.On("FindByID", mock.Anything, int64(10)).Return(availableItem(), nil)
	bookings.On("UpdateStatusFromWaiting", mock.Anything, int64(100), bookingDomain.StatusApproved).
		Return(nil, apperrors.NewBadRequest("booking is no longer waiting for approval"))

	_, err := svc.Decide(context.Background(), 1, 100, true)

	var badReq *apperrors.BadRequestError
	assert.True(t, errors.As(err, &badReq))
}

func TestBookingService_Cancel_ByBooker(t *testing.T) {
	bookings := &MockBookingRepository{}
	items := &MockItemRepository{}
	users := &MockUserRepository{}
	producer := &MockEventProducer{}
	svc := newBookingService(bookings, items, users, producer)

	canceled := bookingDomain.Reconstruct(
		100, svcNow.Add(time.Hour), svcNow.Add(2*time.Hour), 10, 2,
		bookingDomain.StatusCanceled, 2, svcNow, svcNow,
	)
	bookings.On("FindByID", mock.Anything, int64(100)).Return(waitingBooking(), nil)
	bookings.On("UpdateStatusFromWaiting", mock.Anything, int64(100), bookingDomain.StatusCanceled).
		Return(canceled, nil)
	items.On("FindByID", mock.Anything, int64(10)).Return(availableItem(), nil)
	users.On("FindByID", mock.Anything, int64(2)).Return(bookerUser, nil)
	producer.On("PublishEvent", mock.Anything, events.TopicBookingEvents, "100", mock.Anything).Return(nil)

	result, err := svc.Cancel(context.Background(), 2, 100)

	require.NoError(t, err)
	assert.Equal(t, "CANCELED", result.Status)
}

func TestBookingService_Cancel_ByStranger(t *testing.T) {
	bookings := &MockBookingRepository{}
	items := &MockItemRepository{}
	users := &MockUserRepository{}
	svc := newBookingService(bookings, items, users, &MockEventProducer{})

	bookings.On("FindByID", mock.Anything, int64(100)).Return(waitingBooking(), nil)

	_, err := svc.Cancel(context.Background(), 99, 100)

	var forbidden *apperrors.ForbiddenError
	assert.True(t, errors.As(err, &forbidden))
}

func TestBookingService_Get_Stranger(t *testing.T) {
	bookings := &MockBookingRepository{}
	items := &MockItemRepository{}
	users := &MockUserRepository{}
	svc := newBookingService(bookings, items, users, &MockEventProducer{})

	bookings.On("FindByID", mock.Anything, int64(100)).Return(waitingBooking(), nil)
	items.On("FindByID", mock.Anything, int64(10)).Return(availableItem(), nil)

	_, err := svc.Get(context.Background(), 99, 100)

	var forbidden *apperrors.ForbiddenError
	assert.True(t, errors.As(err, &forbidden))
}

func TestBookingService_Get_NotFound(t *testing.T) {
	bookings := &MockBookingRepository{}
	items := &MockItemRepository{}
	users := &MockUserRepository{}
	svc := newBookingService(bookings, items, users, &MockEventProducer{})

	bookings.On("FindByID", mock.Anything, int64(404)).
		Return(nil, apperrors.NewNotFound("Booking", 404))

	_, err := svc.Get(context.Background(), 2, 404)

	var notFound *apperrors.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestBookingService_List_BuildsViewerQuery(t *testing.T) {
	bookings := &MockBookingRepository{}
	items := &MockItemRepository{}
	users := &MockUserRepository{}
	svc := newBookingService(bookings, items, users, &MockEventProducer{})

	users.On("ExistsByID", mock.Anything, int64(1)).Return(true, nil)
	bookings.On("FindForViewer", mock.Anything, mock.MatchedBy(func(q bookingDomain.ViewerQuery) bool {
		return q.ViewerID == 1 &&
			q.Role == bookingDomain.RoleOwner &&
			q.State == bookingDomain.StateWaiting &&
			q.From == 10 && q.Size == 5
	})).Return([]*bookingDomain.Booking{}, int64(0), nil)

	result, err := svc.ListForOwner(context.Background(), 1, "WAITING", 10, 5)

	require.NoError(t, err)
	assert.Empty(t, result)
	bookings.AssertExpectations(t)
}

func TestBookingService_List_DefaultStateIsAll(t *testing.T) {
	bookings := &MockBookingRepository{}
	items := &MockItemRepository{}
	users := &MockUserRepository{}
	svc := newBookingService(bookings, items, users, &MockEventProducer{})

	users.On("ExistsByID", mock.Anything, int64(2)).Return(true, nil)
	bookings.On("FindForViewer", mock.Anything, mock.MatchedBy(func(q bookingDomain.ViewerQuery) bool {
		return q.Role == bookingDomain.RoleBooker && q.State == bookingDomain.StateAll
	})).Return([]*bookingDomain.Booking{}, int64(0), nil)

	_, err := svc.ListForBooker(context.Background(), 2, "", 0, 20)
	require.NoError(t, err)
}

func TestBookingService_List_UnsupportedState(t *testing.T) {
	bookings := &MockBookingRepository{}
	items := &MockItemRepository{}
	users := &MockUserRepository{}
	svc := newBookingService(bookings, items, users, &MockEventProducer{})

	users.On("ExistsByID", mock.Anything, int64(2)).Return(true, nil)

	_, err := svc.ListForBooker(context.Background(), 2, "BANANA", 0, 20)

	var unsupported *apperrors.UnsupportedStateError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "BANANA", unsupported.State)
}

func TestBookingService_List_UnknownViewer(t *testing.T) {
	bookings := &MockBookingRepository{}
	items := &MockItemRepository{}
	users := &MockUserRepository{}
	svc := newBookingService(bookings, items, users, &MockEventProducer{})

	users.On("ExistsByID", mock.Anything, int64(77)).Return(false, nil)

	_, err := svc.ListForBooker(context.Background(), 77, "ALL", 0, 20)

	var notFound *apperrors.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestBookingService_List_BadWindow(t *testing.T) {
	bookings := &MockBookingRepository{}
	items := &MockItemRepository{}
	users := &MockUserRepository{}
	svc := newBookingService(bookings, items, users, &MockEventProducer{})

	users.On("ExistsByID", mock.Anything, int64(2)).Return(true, nil)

	var badReq *apperrors.BadRequestError

	_, err := svc.ListForBooker(context.Background(), 2, "ALL", -1, 20)
	assert.True(t, errors.As(err, &badReq))

	_, err = svc.ListForBooker(context.Background(), 2, "ALL", 0, 0)
	assert.True(t, errors.As(err, &badReq))
}
