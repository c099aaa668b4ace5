// Package events defines the Kafka topics and payloads published by the
// rental service, plus the consumers that react to them.
package events

import "github.com/peershare/service-rental/internal/localtime"

// TopicBookingEvents carries the booking lifecycle stream.
const TopicBookingEvents = "booking.events"

// Booking lifecycle event types, in CloudEvents reverse-DNS style.
const (
	BookingCreated  = "com.peershare.booking.created"
	BookingApproved = "com.peershare.booking.approved"
	BookingRejected = "com.peershare.booking.rejected"
	BookingCanceled = "com.peershare.booking.canceled"
)

// EventSource identifies this service as the producer of its events.
const EventSource = "service-rental"

// BookingLifecycleEvent is the payload shared by every booking lifecycle
// event type.
type BookingLifecycleEvent struct {
	BookingID  int64                   `json:"bookingId"`
	ItemID     int64                   `json:"itemId"`
	ItemName   string                  `json:"itemName"`
	BookerID   int64                   `json:"bookerId"`
	OwnerID    int64                   `json:"ownerId"`
	Status     string                  `json:"status"`
	Start      localtime.LocalDateTime `json:"start"`
	End        localtime.LocalDateTime `json:"end"`
	OccurredAt localtime.LocalDateTime `json:"occurredAt"`
}
