package offer

import "yaarfetch-be/internal/apperr"

var (
	ErrOfferNotFound   = apperr.NotFound("offer not found")
	ErrOrderNotOpen    = apperr.InvalidState("order is not open for offers")
	ErrSelfOffer       = apperr.Forbidden("requester cannot offer on their own order")
	ErrNotCourier      = apperr.Forbidden("only the courier can modify this offer")
	ErrOfferNotPending = apperr.InvalidState("offer is no longer pending")
	ErrOfferChanged    = apperr.Conflict("offer status changed concurrently")
)
