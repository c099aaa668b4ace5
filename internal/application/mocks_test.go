package application

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	bookingDomain "github.com/peershare/service-rental/internal/domain/booking"
	commentDomain "github.com/peershare/service-rental/internal/domain/comment"
	itemDomain "github.com/peershare/service-rental/internal/domain/item"
	requestDomain "github.com/peershare/service-rental/internal/domain/request"
	userDomain "github.com/peershare/service-rental/internal/domain/user"
	"github.com/peershare/service-rental/internal/kafka"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id int64) (*bookingDomain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookingDomain.Booking), args.Error(1)
}

func (m *MockBookingRepository) CreateWithConflictCheck(ctx context.Context, b *bookingDomain.Booking) (*bookingDomain.Booking, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookingDomain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatusFromWaiting(ctx context.Context, id int64, to bookingDomain.Status) (*bookingDomain.Booking, error) {
	args := m.Called(ctx, id, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookingDomain.Booking), args.Error(1)
}

func (m *MockBookingRepository) HasOverlapping(ctx context.Context, itemID int64, start, end time.Time) (bool, error) {
	args := m.Called(ctx, itemID, start, end)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) FindForViewer(ctx context.Context, q bookingDomain.ViewerQuery) ([]*bookingDomain.Booking, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*bookingDomain.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingRepository) FindLastAndNext(ctx context.Context, itemID int64, now time.Time) (*bookingDomain.Booking, *bookingDomain.Booking, error) {
	args := m.Called(ctx, itemID, now)
	var last, next *bookingDomain.Booking
	if args.Get(0) != nil {
		last = args.Get(0).(*bookingDomain.Booking)
	}
	if args.Get(1) != nil {
		next = args.Get(1).(*bookingDomain.Booking)
	}
	return last, next, args.Error(2)
}

func (m *MockBookingRepository) HasCompletedBooking(ctx context.Context, itemID, userID int64, now time.Time) (bool, error) {
	args := m.Called(ctx, itemID, userID, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) HasActiveByBooker(ctx context.Context, userID int64, now time.Time) (bool, error) {
	args := m.Called(ctx, userID, now)
	return args.Bool(0), args.Error(1)
}

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByID(ctx context.Context, id int64) (*itemDomain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*itemDomain.Item), args.Error(1)
}

func (m *MockItemRepository) FindByOwner(ctx context.Context, ownerID int64, from, size int) ([]*itemDomain.Item, int64, error) {
	args := m.Called(ctx, ownerID, from, size)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*itemDomain.Item), args.Get(1).(int64), args.Error(2)
}

func (m *MockItemRepository) Search(ctx context.Context, text string, from, size int) ([]*itemDomain.Item, int64, error) {
	args := m.Called(ctx, text, from, size)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*itemDomain.Item), args.Get(1).(int64), args.Error(2)
}

func (m *MockItemRepository) FindByRequestID(ctx context.Context, requestID int64) ([]*itemDomain.Item, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*itemDomain.Item), args.Error(1)
}

func (m *MockItemRepository) CountByOwner(ctx context.Context, ownerID int64) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *itemDomain.Item) (*itemDomain.Item, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*itemDomain.Item), args.Error(1)
}

func (m *MockItemRepository) Update(ctx context.Context, item *itemDomain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*userDomain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]*userDomain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*userDomain.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *userDomain.User) (*userDomain.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *userDomain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) FindByItem(ctx context.Context, itemID int64) ([]*commentDomain.Comment, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*commentDomain.Comment), args.Error(1)
}

func (m *MockCommentRepository) FindByItemIDs(ctx context.Context, itemIDs []int64) (map[int64][]*commentDomain.Comment, error) {
	args := m.Called(ctx, itemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64][]*commentDomain.Comment), args.Error(1)
}

func (m *MockCommentRepository) Save(ctx context.Context, c *commentDomain.Comment) (*commentDomain.Comment, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commentDomain.Comment), args.Error(1)
}

type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) FindByID(ctx context.Context, id int64) (*requestDomain.ItemRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*requestDomain.ItemRequest), args.Error(1)
}

func (m *MockRequestRepository) FindByRequester(ctx context.Context, requesterID int64) ([]*requestDomain.ItemRequest, error) {
	args := m.Called(ctx, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*requestDomain.ItemRequest), args.Error(1)
}

func (m *MockRequestRepository) FindOthers(ctx context.Context, viewerID int64, from, size int) ([]*requestDomain.ItemRequest, int64, error) {
	args := m.Called(ctx, viewerID, from, size)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*requestDomain.ItemRequest), args.Get(1).(int64), args.Error(2)
}

func (m *MockRequestRepository) Save(ctx context.Context, req *requestDomain.ItemRequest) (*requestDomain.ItemRequest, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*requestDomain.ItemRequest), args.Error(1)
}

type MockEventProducer struct {
	mock.Mock
}

func (m *MockEventProducer) PublishEvent(ctx context.Context, topic string, key string, event kafka.CloudEvent) error {
	args := m.Called(ctx, topic, key, event)
	return args.Error(0)
}

type MockItemSearchCache struct {
	mock.Mock
}

func (m *MockItemSearchCache) Get(ctx context.Context, text string, from, size int) ([]ItemDTO, bool) {
	args := m.Called(ctx, text, from, size)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]ItemDTO), args.Bool(1)
}

func (m *MockItemSearchCache) Set(ctx context.Context, text string, from, size int, items []ItemDTO) {
	m.Called(ctx, text, from, size, items)
}

func (m *MockItemSearchCache) Invalidate(ctx context.Context) {
	m.Called(ctx)
}
