// Package item holds the rentable item aggregate.
package item

import (
	"strings"
	"time"

	"github.com/peershare/service-rental/internal/apperrors"
)

// Item is a thing a user offers for rent. requestID links the item to the
// request it was created in response to, when there is one.
type Item struct {
	id          int64
	name        string
	description string
	available   bool
	ownerID     int64
	requestID   *int64

	createdAt time.Time
	updatedAt time.Time
}

// New creates an item with validated fields. The id is zero until the store
// assigns one.
func New(name, description string, available bool, ownerID int64, requestID *int64) (*Item, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewBadRequest("item name must not be blank")
	}
	if strings.TrimSpace(description) == "" {
		return nil, apperrors.NewBadRequest("item description must not be blank")
	}
	if ownerID <= 0 {
		return nil, apperrors.NewBadRequest("owner id is required")
	}

	now := time.Now().UTC()
	return &Item{
		name:        name,
		description: description,
		available:   available,
		ownerID:     ownerID,
		requestID:   requestID,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds an Item from persistence data (no validation).
func Reconstruct(
	id int64,
	name, description string,
	available bool,
	ownerID int64,
	requestID *int64,
	createdAt, updatedAt time.Time,
) *Item {
	return &Item{
		id:          id,
		name:        name,
		description: description,
		available:   available,
		ownerID:     ownerID,
		requestID:   requestID,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// --- Getters ---

func (i *Item) ID() int64            { return i.id }
func (i *Item) Name() string         { return i.name }
func (i *Item) Description() string  { return i.description }
func (i *Item) Available() bool      { return i.available }
func (i *Item) OwnerID() int64       { return i.ownerID }
func (i *Item) RequestID() *int64    { return i.requestID }
func (i *Item) CreatedAt() time.Time { return i.createdAt }
func (i *Item) UpdatedAt() time.Time { return i.updatedAt }

// --- Behavior ---

// IsOwnedBy reports whether the user owns this item.
func (i *Item) IsOwnedBy(userID int64) bool {
	return i.ownerID == userID
}

// Update applies a partial patch. Empty strings leave text fields untouched;
// a nil available pointer leaves the flag untouched.
func (i *Item) Update(name, description string, available *bool) {
	if name != "" {
		i.name = name
	}
	if description != "" {
		i.description = description
	}
	if available != nil {
		i.available = *available
	}
	i.updatedAt = time.Now().UTC()
}
