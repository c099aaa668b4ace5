package booking

import (
	"time"

	"github.com/peershare/service-rental/internal/apperrors"
)

// ListState is the semantic listing filter, distinct from a booking's own
// status: CURRENT/PAST/FUTURE slice by time, WAITING/REJECTED by status.
type ListState string

const (
	StateAll      ListState = "ALL"
	StateCurrent  ListState = "CURRENT"
	StatePast     ListState = "PAST"
	StateFuture   ListState = "FUTURE"
	StateWaiting  ListState = "WAITING"
	StateRejected ListState = "REJECTED"
)

// ParseListState resolves a raw query literal. Empty defaults to ALL; an
// unrecognized literal yields UnsupportedStateError carrying the literal.
func ParseListState(raw string) (ListState, error) {
	if raw == "" {
		return StateAll, nil
	}
	switch ListState(raw) {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return ListState(raw), nil
	}
	return "", apperrors.NewUnsupportedState(raw)
}

// ViewerRole scopes a listing to bookings the viewer made (BOOKER) or
// bookings against items the viewer owns (OWNER).
type ViewerRole string

const (
	RoleBooker ViewerRole = "BOOKER"
	RoleOwner  ViewerRole = "OWNER"
)

// ViewerQuery is the resolved, concrete query a listing call turns into.
// Results are ordered by start descending, ties broken by id descending,
// and windowed by the zero-based From offset and Size limit.
type ViewerQuery struct {
	ViewerID int64
	Role     ViewerRole
	State    ListState
	Now      time.Time
	From     int
	Size     int
}

// NewViewerQuery validates the pagination window and builds the query.
func NewViewerQuery(viewerID int64, role ViewerRole, state ListState, now time.Time, from, size int) (ViewerQuery, error) {
	if from < 0 {
		return ViewerQuery{}, apperrors.NewBadRequest("from must not be negative")
	}
	if size <= 0 {
		return ViewerQuery{}, apperrors.NewBadRequest("size must be positive")
	}
	return ViewerQuery{
		ViewerID: viewerID,
		Role:     role,
		State:    state,
		Now:      now,
		From:     from,
		Size:     size,
	}, nil
}
