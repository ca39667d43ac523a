package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/KMP-BookingService/pkg/ptr"
)

func TestNextStatus_AssignByStaff(t *testing.T) {
	b := &Booking{ID: 1, CustomerID: 10, Status: StatusPending}

	next, err := NextStatus(b, Actor{UserID: 99, Role: RoleStaff}, ActionAssign)

	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, next)
}

func TestNextStatus_AssignByAdmin(t *testing.T) {
	b := &Booking{ID: 1, CustomerID: 10, Status: StatusPending}

	next, err := NextStatus(b, Actor{UserID: 99, Role: RoleAdmin}, ActionAssign)

	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, next)
}

func TestNextStatus_AssignByCustomer(t *testing.T) {
	b := &Booking{ID: 1, CustomerID: 10, Status: StatusPending}

	_, err := NextStatus(b, Actor{UserID: 10, Role: RoleCustomer}, ActionAssign)

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestNextStatus_DoubleAssign(t *testing.T) {
	// Повторное назначение из accepted недопустимо
	b := &Booking{ID: 1, CustomerID: 10, Status: StatusAccepted, FreelancerID: ptr.Ptr(int64(20))}

	_, err := NextStatus(b, Actor{UserID: 99, Role: RoleStaff}, ActionAssign)

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestNextStatus_StartByAssignedFreelancer(t *testing.T) {
	b := &Booking{ID: 1, CustomerID: 10, Status: StatusAccepted, FreelancerID: ptr.Ptr(int64(20))}

	next, err := NextStatus(b, Actor{UserID: 20, Role: RoleFreelancer}, ActionStart)

	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, next)
}

func TestNextStatus_StartByOtherFreelancer(t *testing.T) {
	b := &Booking{ID: 1, CustomerID: 10, Status: StatusAccepted, FreelancerID: ptr.Ptr(int64(20))}

	_, err := NextStatus(b, Actor{UserID: 21, Role: RoleFreelancer}, ActionStart)

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestNextStatus_StartWithoutAssignment(t *testing.T) {
	b := &Booking{ID: 1, CustomerID: 10, Status: StatusAccepted}

	_, err := NextStatus(b, Actor{UserID: 20, Role: RoleFreelancer}, ActionStart)

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestNextStatus_StartByStaff(t *testing.T) {
	// Start доступен только назначенному фрилансеру, даже не staff
	b := &Booking{ID: 1, CustomerID: 10, Status: StatusAccepted, FreelancerID: ptr.Ptr(int64(20))}

	_, err := NextStatus(b, Actor{UserID: 99, Role: RoleStaff}, ActionStart)

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestNextStatus_CompleteByAssignedFreelancer(t *testing.T) {
	b := &Booking{ID: 1, CustomerID: 10, Status: StatusInProgress, FreelancerID: ptr.Ptr(int64(20))}

	next, err := NextStatus(b, Actor{UserID: 20, Role: RoleFreelancer}, ActionComplete)

	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, next)
}

func TestNextStatus_CompleteFromAccepted(t *testing.T) {
	b := &Booking{ID: 1, CustomerID: 10, Status: StatusAccepted, FreelancerID: ptr.Ptr(int64(20))}

	_, err := NextStatus(b, Actor{UserID: 20, Role: RoleFreelancer}, ActionComplete)

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestNextStatus_CancelPendingByOwner(t *testing.T) {
	b := &Booking{ID: 1, CustomerID: 10, Status: StatusPending}

	next, err := NextStatus(b, Actor{UserID: 10, Role: RoleCustomer}, ActionCancel)

	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, next)
}

func TestNextStatus_CancelPendingByOtherCustomer(t *testing.T) {
	b := &Booking{ID: 1, CustomerID: 10, Status: StatusPending}

	_, err := NextStatus(b, Actor{UserID: 11, Role: RoleCustomer}, ActionCancel)

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestNextStatus_CancelAcceptedByOwner(t *testing.T) {
	// После назначения отменить может только staff/admin
	b := &Booking{ID: 1, CustomerID: 10, Status: StatusAccepted, FreelancerID: ptr.Ptr(int64(20))}

	_, err := NextStatus(b, Actor{UserID: 10, Role: RoleCustomer}, ActionCancel)

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestNextStatus_CancelAcceptedByStaff(t *testing.T) {
	b := &Booking{ID: 1, CustomerID: 10, Status: StatusAccepted, FreelancerID: ptr.Ptr(int64(20))}

	next, err := NextStatus(b, Actor{UserID: 99, Role: RoleStaff}, ActionCancel)

	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, next)
}

func TestNextStatus_CancelInProgress(t *testing.T) {
	b := &Booking{ID: 1, CustomerID: 10, Status: StatusInProgress, FreelancerID: ptr.Ptr(int64(20))}

	_, err := NextStatus(b, Actor{UserID: 99, Role: RoleAdmin}, ActionCancel)

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestNextStatus_TerminalStatesRejectEverything(t *testing.T) {
	actors := []Actor{
		{UserID: 10, Role: RoleCustomer},
		{UserID: 20, Role: RoleFreelancer},
		{UserID: 99, Role: RoleStaff},
		{UserID: 100, Role: RoleAdmin},
	}
	actions := []Action{ActionAssign, ActionStart, ActionComplete, ActionCancel}

	for _, status := range TerminalStatuses {
		b := &Booking{ID: 1, CustomerID: 10, Status: status, FreelancerID: ptr.Ptr(int64(20))}
		for _, actor := range actors {
			for _, action := range actions {
				_, err := NextStatus(b, actor, action)
				assert.ErrorIs(t, err, ErrInvalidTransition,
					"status=%s actor=%s action=%s", status, actor.Role, action)
			}
		}
	}
}

func TestParseAction(t *testing.T) {
	for _, valid := range []string{"assign", "start", "complete", "cancel"} {
		action, ok := ParseAction(valid)
		assert.True(t, ok)
		assert.Equal(t, Action(valid), action)
	}

	_, ok := ParseAction("approve")
	assert.False(t, ok)
}

func TestBookingPredicates(t *testing.T) {
	pending := &Booking{Status: StatusPending}
	assert.False(t, pending.IsTerminal())

	for _, status := range TerminalStatuses {
		assert.True(t, (&Booking{Status: status}).IsTerminal())
	}

	assigned := &Booking{FreelancerID: ptr.Ptr(int64(20))}
	assert.True(t, assigned.IsAssignedTo(20))
	assert.False(t, assigned.IsAssignedTo(21))
	assert.False(t, (&Booking{}).IsAssignedTo(20))
}
