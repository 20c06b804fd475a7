package review

import "yaarfetch-be/internal/apperr"

var (
	ErrReviewNotFound   = apperr.NotFound("review not found")
	ErrMatchNotComplete = apperr.InvalidState("match is not completed")
	ErrNotParticipants  = apperr.Forbidden("author and subject must be the two match participants")
	ErrDuplicateReview  = apperr.Conflict("a review for this match by this author already exists")
)
