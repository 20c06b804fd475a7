package order

import "time"

type Status string

const (
	StatusOpen      Status = "OPEN"
	StatusMatched   Status = "MATCHED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusMatched, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Cancellable reports whether the order may still be cancelled by its
// requester. Completed and already-cancelled orders are frozen.
func (s Status) Cancellable() bool {
	return s == StatusOpen || s == StatusMatched
}

type Order struct {
	ID          string
	RequesterID string
	Description string
	Pickup      string
	Dropoff     string
	Price       float64
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateOrderInput struct {
	Description string
	Pickup      string
	Dropoff     string
	Price       float64
}
