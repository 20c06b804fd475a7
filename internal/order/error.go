package order

import "yaarfetch-be/internal/apperr"

var (
	ErrOrderNotFound  = apperr.NotFound("order not found")
	ErrNotRequester   = apperr.Forbidden("only the requester can modify this order")
	ErrNotCancellable = apperr.InvalidState("order can no longer be cancelled")
)
