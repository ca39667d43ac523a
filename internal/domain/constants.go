package domain

// Rewards configuration constants
const (
	// PointValueCents is the redemption value of one loyalty point in minor
	// units: R0.10 per point. The legacy booking forms disagreed between
	// 0.1 and 1.0 rand per point; 0.10 is the rate the business confirmed.
	PointValueCents = 10

	// MaxDiscountPercent caps a points discount at this share of the base
	// price, however large the balance is
	MaxDiscountPercent = 30

	// EarnRandsPerPoint controls earning: 1 point per full R100 of the
	// booking's base price, floored
	EarnRandsPerPoint = 100
)

// Business validation constants
const (
	MaxCancellationReasonLength = 500
	MaxLocationAddressLength    = 500
	MaxVirtualLinkLength        = 500
)

// Booking reference configuration
const (
	ReferencePrefix       = "KMP"
	ReferenceRandomLength = 5
)

// TerminalStatuses lists statuses no transition may leave
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
}
