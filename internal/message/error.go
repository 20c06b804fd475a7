package message

import "yaarfetch-be/internal/apperr"

var (
	ErrNotParticipant = apperr.Forbidden("only match participants can exchange messages")
	ErrMatchCancelled = apperr.InvalidState("messaging is closed on a cancelled match")
)
