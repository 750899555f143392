package models

type UserStatus string
type UserRole string
type BusinessRole string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"

	BusinessRoleOwner    BusinessRole = "owner"
	BusinessRoleOperator BusinessRole = "operator"
)

// StaffRoles are the business roles that count as restaurant staff
var StaffRoles = []BusinessRole{BusinessRoleOwner, BusinessRoleOperator}

func (r BusinessRole) IsValid() bool {
	return r == BusinessRoleOwner || r == BusinessRoleOperator
}

// ReservationState is the lifecycle of a table booking.
type ReservationState string

const (
	ReservationPending   ReservationState = "pending"
	ReservationConfirmed ReservationState = "confirmed"
	ReservationRejected  ReservationState = "rejected"
	ReservationCancelled ReservationState = "cancelled"
	ReservationCompleted ReservationState = "completed"
)

var reservationTransitions = map[ReservationState][]ReservationState{
	ReservationPending:   {ReservationConfirmed, ReservationRejected, ReservationCancelled},
	ReservationConfirmed: {ReservationCompleted, ReservationCancelled},
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s ReservationState) CanTransitionTo(next ReservationState) bool {
	for _, allowed := range reservationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ReservationSourceStates returns the states a reservation must be in to move to target.
func ReservationSourceStates(target ReservationState) []ReservationState {
	var sources []ReservationState
	for from, targets := range reservationTransitions {
		for _, t := range targets {
			if t == target {
				sources = append(sources, from)
			}
		}
	}
	return sources
}

func (s ReservationState) IsValid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationRejected, ReservationCancelled, ReservationCompleted:
		return true
	}
	return false
}

// PostState is the moderation state of a post. Only pending posts can move.
type PostState string

const (
	PostPending  PostState = "pending"
	PostAccepted PostState = "accepted"
	PostRejected PostState = "rejected"
)

func (s PostState) CanTransitionTo(next PostState) bool {
	return s == PostPending && (next == PostAccepted || next == PostRejected)
}

func (s PostState) IsValid() bool {
	return s == PostPending || s == PostAccepted || s == PostRejected
}
