package domain

import "errors"

// Lifecycle errors
var (
	// ErrInvalidTransition is returned when the requested action is not
	// permitted from the booking's current status
	ErrInvalidTransition = errors.New("domain: invalid status transition")

	// ErrUnauthorized is returned when the actor is not permitted to
	// perform the requested action
	ErrUnauthorized = errors.New("domain: actor not permitted for this action")
)

// Action is a lifecycle action on a booking
type Action string

const (
	ActionAssign   Action = "assign"
	ActionStart    Action = "start"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
)

// ParseAction validates an action string
func ParseAction(s string) (Action, bool) {
	a := Action(s)
	switch a {
	case ActionAssign, ActionStart, ActionComplete, ActionCancel:
		return a, true
	}
	return "", false
}

// actorRule describes who may drive a given transition
type actorRule int

const (
	// ruleStaff: staff or admin only
	ruleStaff actorRule = iota
	// ruleAssignedFreelancer: only the freelancer assigned to the booking
	ruleAssignedFreelancer
	// ruleOwnerOrStaff: the booking's customer, or staff/admin
	ruleOwnerOrStaff
)

type transitionKey struct {
	from   BookingStatus
	action Action
}

type transition struct {
	to   BookingStatus
	rule actorRule
}

// transitions is the single authorization and transition table for the
// booking lifecycle. Every mutating operation consults it; there are no
// role checks outside this table.
//
//	pending  --assign-->   accepted    (staff/admin)
//	pending  --cancel-->   cancelled   (customer owner, staff/admin)
//	accepted --cancel-->   cancelled   (staff/admin)
//	accepted --start-->    in_progress (assigned freelancer)
//	in_progress --complete--> completed (assigned freelancer)
//
// completed and cancelled are terminal.
var transitions = map[transitionKey]transition{
	{StatusPending, ActionAssign}:      {StatusAccepted, ruleStaff},
	{StatusPending, ActionCancel}:      {StatusCancelled, ruleOwnerOrStaff},
	{StatusAccepted, ActionCancel}:     {StatusCancelled, ruleStaff},
	{StatusAccepted, ActionStart}:      {StatusInProgress, ruleAssignedFreelancer},
	{StatusInProgress, ActionComplete}: {StatusCompleted, ruleAssignedFreelancer},
}

// NextStatus resolves the target status for an action against the booking's
// current status and checks the actor against the table's rule.
// Returns ErrInvalidTransition when the (status, action) pair has no row,
// ErrUnauthorized when the row exists but the actor fails its rule.
// The booking itself is never mutated here.
func NextStatus(b *Booking, actor Actor, action Action) (BookingStatus, error) {
	t, ok := transitions[transitionKey{b.Status, action}]
	if !ok {
		return "", ErrInvalidTransition
	}

	switch t.rule {
	case ruleStaff:
		if !actor.Role.IsStaff() {
			return "", ErrUnauthorized
		}
	case ruleAssignedFreelancer:
		if actor.Role != RoleFreelancer || !b.IsAssignedTo(actor.UserID) {
			return "", ErrUnauthorized
		}
	case ruleOwnerOrStaff:
		if !actor.Role.IsStaff() && !(actor.Role == RoleCustomer && b.CustomerID == actor.UserID) {
			return "", ErrUnauthorized
		}
	}

	return t.to, nil
}
