package domain

import (
	"time"

	"github.com/m04kA/KMP-BookingService/pkg/money"
)

// Role represents a platform role. Every user has exactly one.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleFreelancer Role = "freelancer"
	RoleStaff      Role = "staff"
	RoleAdmin      Role = "admin"
)

// IsStaff returns true for back-office roles (staff or admin)
func (r Role) IsStaff() bool {
	return r == RoleStaff || r == RoleAdmin
}

// ParseRole validates a role string
func ParseRole(s string) (Role, bool) {
	role := Role(s)
	switch role {
	case RoleCustomer, RoleFreelancer, RoleStaff, RoleAdmin:
		return role, true
	}
	return "", false
}

// Actor is the identity+role pair attempting an operation.
// Supplied by the identity collaborator on every request; the core trusts
// it and only enforces role-gated rules.
type Actor struct {
	UserID int64
	Role   Role
}

// UserProfile represents a platform user. Identity fields are owned by the
// identity subsystem; this service reads and writes Points and TotalSpent.
type UserProfile struct {
	ID         int64
	Email      string
	Role       Role
	FullName   string
	Points     int64
	TotalSpent money.Money
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PointsEntryType is the business reason for a ledger entry
type PointsEntryType string

const (
	PointsEntryEarn   PointsEntryType = "earn"
	PointsEntryRedeem PointsEntryType = "redeem"
)

// PointsEntry is a single row in the append-only points ledger.
// Amount is signed: positive for earn, negative for redeem.
// BalanceAfter is the folded balance after applying the entry.
type PointsEntry struct {
	ID           int64
	UserID       int64
	BookingID    *int64
	EntryType    PointsEntryType
	Amount       int64
	BalanceAfter int64
	CreatedAt    time.Time
}
