package review

import "time"

type Review struct {
	ID        string
	MatchID   string
	AuthorID  string
	SubjectID string
	Rating    int
	Comment   string
	CreatedAt time.Time
}

type CreateReviewInput struct {
	MatchID   string
	SubjectID string
	Rating    int
	Comment   string
}
