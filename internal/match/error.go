package match

import "yaarfetch-be/internal/apperr"

var (
	ErrMatchNotFound     = apperr.NotFound("match not found")
	ErrNotParticipant    = apperr.Forbidden("actor is not a participant of this match")
	ErrWrongRole         = apperr.Forbidden("actor role does not permit this transition")
	ErrNotRequester      = apperr.Forbidden("only the requester can accept an offer")
	ErrOfferNotPending   = apperr.InvalidState("offer is no longer pending")
	ErrOrderNotOpen      = apperr.InvalidState("order is no longer open")
	ErrMatchFinalized    = apperr.InvalidState("match is in a terminal state")
	ErrAcceptRace        = apperr.Conflict("order was matched concurrently")
	ErrTransitionRace    = apperr.Conflict("match status changed concurrently")
	ErrInvalidTransition = apperr.InvalidTransition("requested status is not reachable from the current status")
)
