package comment

import "context"

// Repository defines persistence operations for comments.
type Repository interface {
	// FindByItem retrieves an item's comments, oldest first.
	FindByItem(ctx context.Context, itemID int64) ([]*Comment, error)

	// FindByItemIDs retrieves comments for several items at once, grouped by
	// item id, to avoid per-item queries on listing paths.
	FindByItemIDs(ctx context.Context, itemIDs []int64) (map[int64][]*Comment, error)

	// Save persists a new comment and returns it with its assigned id.
	Save(ctx context.Context, c *Comment) (*Comment, error)
}
