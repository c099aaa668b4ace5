package request

import "context"

// Repository defines persistence operations for item requests.
type Repository interface {
	// FindByID retrieves a request by its identifier.
	FindByID(ctx context.Context, id int64) (*ItemRequest, error)

	// FindByRequester retrieves the user's own requests, newest first.
	FindByRequester(ctx context.Context, requesterID int64) ([]*ItemRequest, error)

	// FindOthers retrieves requests made by everyone except the viewer,
	// newest first, with pagination.
	FindOthers(ctx context.Context, viewerID int64, from, size int) ([]*ItemRequest, int64, error)

	// Save persists a new request and returns it with its assigned id.
	Save(ctx context.Context, req *ItemRequest) (*ItemRequest, error)
}
