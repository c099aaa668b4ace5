// Package request holds the item request aggregate: a user asking the
// community for an item nobody has listed yet.
package request

import (
	"strings"
	"time"

	"github.com/peershare/service-rental/internal/apperrors"
)

// ItemRequest describes a wanted item. The items created in response are not
// stored on it; they are found by querying items whose request reference
// equals this request's id.
type ItemRequest struct {
	id          int64
	description string
	requesterID int64
	createdAt   time.Time
}

// New creates an item request. The creation timestamp is server-assigned and
// immutable afterwards.
func New(description string, requesterID int64) (*ItemRequest, error) {
	if strings.TrimSpace(description) == "" {
		return nil, apperrors.NewBadRequest("request description must not be blank")
	}
	if requesterID <= 0 {
		return nil, apperrors.NewBadRequest("requester id is required")
	}

	return &ItemRequest{
		description: description,
		requesterID: requesterID,
		createdAt:   time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds an ItemRequest from persistence data (no validation).
func Reconstruct(id int64, description string, requesterID int64, createdAt time.Time) *ItemRequest {
	return &ItemRequest{
		id:          id,
		description: description,
		requesterID: requesterID,
		createdAt:   createdAt,
	}
}

func (r *ItemRequest) ID() int64           { return r.id }
func (r *ItemRequest) Description() string { return r.description }
func (r *ItemRequest) RequesterID() int64  { return r.requesterID }
func (r *ItemRequest) CreatedAt() time.Time { return r.createdAt }
