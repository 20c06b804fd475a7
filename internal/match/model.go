package match

import "time"

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDelivered  Status = "DELIVERED"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDelivered, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal statuses freeze the match; no further transitions exist.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// transitions is the closed forward/cancel set:
//
//	PENDING --(courier)--> IN_PROGRESS --(courier)--> DELIVERED --(requester)--> COMPLETED
//	PENDING, IN_PROGRESS --(either)--> CANCELLED
var transitions = map[Status][]Status{
	StatusPending:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusDelivered, StatusCancelled},
	StatusDelivered:  {StatusCompleted},
}

// CanTransition reports whether target is reachable from current in a
// single step.
func CanTransition(current, target Status) bool {
	for _, next := range transitions[current] {
		if next == target {
			return true
		}
	}
	return false
}

type Match struct {
	ID          string
	OrderID     string
	OfferID     string
	RequesterID string
	CourierID   string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Participant reports whether userID is one of the two matched parties.
func (m *Match) Participant(userID string) bool {
	return userID == m.RequesterID || userID == m.CourierID
}

// allowedActor reports whether the actor holds the role required for
// the given target status. Transition legality is checked separately.
func (m *Match) allowedActor(actorID string, target Status) bool {
	switch target {
	case StatusInProgress, StatusDelivered:
		return actorID == m.CourierID
	case StatusCompleted:
		return actorID == m.RequesterID
	case StatusCancelled:
		return m.Participant(actorID)
	}
	return false
}
