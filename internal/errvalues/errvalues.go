package errvalues

import "errors"

// Общая таксономия ошибок, разделяемая слоями repo, service и handlers.
var (
	ErrValidation     = errors.New("validation failed")
	ErrBadCredentials = errors.New("invalid login or password")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("unique field already taken")
	ErrStorage        = errors.New("blob storage failed")
)
