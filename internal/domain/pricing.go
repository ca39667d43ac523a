package domain

import "github.com/m04kA/KMP-BookingService/pkg/money"

// Quote is the result of the rewards calculator
type Quote struct {
	BasePrice  money.Money
	Discount   money.Money
	FinalPrice money.Money

	// PointsToRedeem is the exact number of points the discount consumes.
	// Less than the full balance when the 30% cap binds.
	PointsToRedeem int64
}

// ComputeFinalPrice computes the discount and final price for a booking.
// Pure calculation: callers apply the resulting ledger debit themselves.
//
// With redeem=false the quote is the base price unchanged. With redeem=true
// the discount is min(basePrice * MaxDiscountPercent%, pointBalance * PointValueCents),
// rounded down to a whole number of points so the debit is always exact.
func ComputeFinalPrice(basePrice money.Money, pointBalance int64, redeem bool) Quote {
	if !redeem || pointBalance <= 0 || !basePrice.IsPositive() {
		return Quote{
			BasePrice:  basePrice,
			Discount:   0,
			FinalPrice: basePrice,
		}
	}

	maxDiscount := basePrice.Percent(MaxDiscountPercent)
	balanceValue := money.Money(pointBalance * PointValueCents)

	points := money.Min(balanceValue, maxDiscount).Cents() / PointValueCents
	discount := money.Money(points * PointValueCents)

	return Quote{
		BasePrice:      basePrice,
		Discount:       discount,
		FinalPrice:     basePrice.Sub(discount),
		PointsToRedeem: points,
	}
}

// EarnedPoints returns the loyalty points a completed booking generates:
// one point per full EarnRandsPerPoint of the base price, floored.
func EarnedPoints(basePrice money.Money) int64 {
	if !basePrice.IsPositive() {
		return 0
	}
	return basePrice.Cents() / (EarnRandsPerPoint * 100)
}
