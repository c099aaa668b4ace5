package application

import (
	"context"

	"github.com/peershare/service-rental/internal/kafka"
)

// EventProducer publishes CloudEvents to the message broker.
type EventProducer interface {
	PublishEvent(ctx context.Context, topic string, key string, event kafka.CloudEvent) error
}

// ItemSearchCache caches search result pages keyed by text and window.
// Implementations absorb backend failures and report only hit/miss.
type ItemSearchCache interface {
	Get(ctx context.Context, text string, from, size int) ([]ItemDTO, bool)
	Set(ctx context.Context, text string, from, size int, items []ItemDTO)
	Invalidate(ctx context.Context)
}

// BookingUseCase is the booking API consumed by the HTTP layer.
type BookingUseCase interface {
	Create(ctx context.Context, bookerID int64, req CreateBookingRequest) (*BookingDTO, error)
	Decide(ctx context.Context, callerID, bookingID int64, approved bool) (*BookingDTO, error)
	Cancel(ctx context.Context, callerID, bookingID int64) (*BookingDTO, error)
	Get(ctx context.Context, viewerID, bookingID int64) (*BookingDTO, error)
	ListForBooker(ctx context.Context, bookerID int64, state string, from, size int) ([]BookingDTO, error)
	ListForOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]BookingDTO, error)
}

// ItemUseCase is the item API consumed by the HTTP layer.
type ItemUseCase interface {
	Create(ctx context.Context, ownerID int64, req CreateItemRequest) (*ItemDTO, error)
	Update(ctx context.Context, callerID, itemID int64, req UpdateItemRequest) (*ItemDTO, error)
	Get(ctx context.Context, viewerID, itemID int64) (*ItemDetailDTO, error)
	ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]ItemDetailDTO, error)
	Search(ctx context.Context, text string, from, size int) ([]ItemDTO, error)
	AddComment(ctx context.Context, authorID, itemID int64, req CreateCommentRequest) (*CommentDTO, error)
}

// UserUseCase is the user API consumed by the HTTP layer.
type UserUseCase interface {
	Create(ctx context.Context, req CreateUserRequest) (*UserDTO, error)
	Update(ctx context.Context, userID int64, req UpdateUserRequest) (*UserDTO, error)
	Get(ctx context.Context, userID int64) (*UserDTO, error)
	List(ctx context.Context) ([]UserDTO, error)
	Delete(ctx context.Context, userID int64) error
}

// RequestUseCase is the item-request API consumed by the HTTP layer.
type RequestUseCase interface {
	Create(ctx context.Context, requesterID int64, req CreateItemRequestRequest) (*RequestDTO, error)
	ListOwn(ctx context.Context, requesterID int64) ([]RequestDTO, error)
	ListOthers(ctx context.Context, viewerID int64, from, size int) ([]RequestDTO, error)
	Get(ctx context.Context, viewerID, requestID int64) (*RequestDTO, error)
}
