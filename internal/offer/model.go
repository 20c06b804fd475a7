package offer

import "time"

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusAccepted  Status = "ACCEPTED"
	StatusRejected  Status = "REJECTED"
	StatusWithdrawn Status = "WITHDRAWN"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

type Offer struct {
	ID        string
	OrderID   string
	CourierID string
	Price     float64
	Note      string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateOfferInput struct {
	OrderID string
	Price   float64
	Note    string
}
