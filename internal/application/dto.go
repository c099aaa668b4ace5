package application

import "github.com/peershare/service-rental/internal/localtime"

// UserDTO is the response representation of a user.
type UserDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserShortDTO is the compact user reference embedded in bookings.
type UserShortDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ItemShortDTO is the compact item reference embedded in bookings.
type ItemShortDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ItemDTO is the response representation of an item.
type ItemDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

// BookingBriefDTO is the compact booking reference embedded in item views.
type BookingBriefDTO struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

// CommentDTO is the response representation of a comment.
type CommentDTO struct {
	ID         int64                   `json:"id"`
	Text       string                  `json:"text"`
	AuthorName string                  `json:"authorName"`
	Created    localtime.LocalDateTime `json:"created"`
}

// ItemDetailDTO extends ItemDTO with comments and, for the owner,
// the adjacent approved bookings.
type ItemDetailDTO struct {
	ItemDTO
	LastBooking *BookingBriefDTO `json:"lastBooking,omitempty"`
	NextBooking *BookingBriefDTO `json:"nextBooking,omitempty"`
	Comments    []CommentDTO     `json:"comments"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID     int64                   `json:"id"`
	Start  localtime.LocalDateTime `json:"start"`
	End    localtime.LocalDateTime `json:"end"`
	Status string                  `json:"status"`
	Item   ItemShortDTO            `json:"item"`
	Booker UserShortDTO            `json:"booker"`
}

// RequestDTO is the response representation of an item request, including
// the items offered in answer to it.
type RequestDTO struct {
	ID          int64                   `json:"id"`
	Description string                  `json:"description"`
	Created     localtime.LocalDateTime `json:"created"`
	Items       []ItemDTO               `json:"items"`
}
