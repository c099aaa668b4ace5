// Package comment holds the item comment aggregate.
package comment

import (
	"strings"
	"time"

	"github.com/peershare/service-rental/internal/apperrors"
)

// Comment is feedback left on an item. Only a user with a completed booking
// of the item may write one; that cross-entity rule lives in the item
// service, not here.
type Comment struct {
	id        int64
	text      string
	itemID    int64
	authorID  int64
	createdAt time.Time
}

// New creates a comment. The creation timestamp is server-assigned.
func New(text string, itemID, authorID int64) (*Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewBadRequest("comment text must not be blank")
	}
	if itemID <= 0 {
		return nil, apperrors.NewBadRequest("item id is required")
	}
	if authorID <= 0 {
		return nil, apperrors.NewBadRequest("author id is required")
	}

	return &Comment{
		text:      text,
		itemID:    itemID,
		authorID:  authorID,
		createdAt: time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a Comment from persistence data (no validation).
func Reconstruct(id int64, text string, itemID, authorID int64, createdAt time.Time) *Comment {
	return &Comment{
		id:        id,
		text:      text,
		itemID:    itemID,
		authorID:  authorID,
		createdAt: createdAt,
	}
}

func (c *Comment) ID() int64            { return c.id }
func (c *Comment) Text() string         { return c.text }
func (c *Comment) ItemID() int64        { return c.itemID }
func (c *Comment) AuthorID() int64      { return c.authorID }
func (c *Comment) CreatedAt() time.Time { return c.createdAt }
