package item

import "context"

// Repository defines persistence operations for items.
type Repository interface {
	// FindByID retrieves an item by its identifier.
	FindByID(ctx context.Context, id int64) (*Item, error)

	// FindByOwner retrieves the owner's items with pagination, oldest first.
	FindByOwner(ctx context.Context, ownerID int64, from, size int) ([]*Item, int64, error)

	// Search retrieves available items whose name or description contains the
	// text, case-insensitively, with pagination.
	Search(ctx context.Context, text string, from, size int) ([]*Item, int64, error)

	// FindByRequestID retrieves the items created in response to a request.
	FindByRequestID(ctx context.Context, requestID int64) ([]*Item, error)

	// CountByOwner returns how many items the user owns.
	CountByOwner(ctx context.Context, ownerID int64) (int64, error)

	// Save persists a new item and returns it with its assigned id.
	Save(ctx context.Context, item *Item) (*Item, error)

	// Update persists changes to an existing item.
	Update(ctx context.Context, item *Item) error
}
