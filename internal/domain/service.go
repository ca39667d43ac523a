package domain

import "github.com/m04kA/KMP-BookingService/pkg/money"

// Service is a purchasable offering from the catalog collaborator.
// Immutable reference data; the booking core only reads it.
type Service struct {
	ID               int64
	Title            string
	Description      string
	RequiresLocation bool
	BasePrice        money.Money
}
