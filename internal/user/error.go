package user

import "yaarfetch-be/internal/apperr"

var ErrUserNotFound = apperr.NotFound("user not found")
