package domain

import (
	"time"

	"github.com/m04kA/KMP-BookingService/pkg/money"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusAccepted   BookingStatus = "accepted"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// MeetingType represents how a booking session takes place
type MeetingType string

const (
	MeetingPhysical MeetingType = "physical"
	MeetingVirtual  MeetingType = "virtual"
)

// Booking represents a service booking in the system
type Booking struct {
	ID        int64
	Reference string // Unique human-readable code, e.g. "KMP-AX829"

	CustomerID   int64
	ServiceID    int64
	FreelancerID *int64 // Set when staff assigns the job

	Status      BookingStatus
	MeetingType MeetingType

	// Exactly one of the two payloads is populated, depending on MeetingType
	LocationAddress *string
	VirtualLink     *string

	ScheduledAt time.Time

	// Denormalized service data for history
	ServiceTitle string
	BasePrice    money.Money
	Discount     money.Money
	FinalPrice   money.Money

	// Points debited from the customer at creation; 0 when no redemption
	RedeemedPoints int64

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true if no further transition is permitted
func (b *Booking) IsTerminal() bool {
	for _, status := range TerminalStatuses {
		if b.Status == status {
			return true
		}
	}
	return false
}

// IsAssignedTo returns true if the booking is assigned to the given freelancer
func (b *Booking) IsAssignedTo(freelancerID int64) bool {
	return b.FreelancerID != nil && *b.FreelancerID == freelancerID
}

// UsedRedemption returns true if the booking was paid with a points discount
func (b *Booking) UsedRedemption() bool {
	return b.RedeemedPoints > 0
}

// BookingsFilter filters booking lists for the staff view.
// All fields are optional; a zero filter matches every booking.
type BookingsFilter struct {
	CustomerID   *int64
	FreelancerID *int64
	Status       *BookingStatus
}

// ValidStatuses lists every valid booking status
var ValidStatuses = []BookingStatus{
	StatusPending,
	StatusAccepted,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

// ParseStatus validates a status string against ValidStatuses
func ParseStatus(s string) (BookingStatus, bool) {
	status := BookingStatus(s)
	for _, valid := range ValidStatuses {
		if status == valid {
			return status, true
		}
	}
	return "", false
}

// ParseMeetingType validates a meeting type string
func ParseMeetingType(s string) (MeetingType, bool) {
	mt := MeetingType(s)
	if mt == MeetingPhysical || mt == MeetingVirtual {
		return mt, true
	}
	return "", false
}
