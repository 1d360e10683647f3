package domain

import "github.com/alertwise/alertwise-backend/internal/apperr"

var (
	ErrRequestNotFound = apperr.New(apperr.KindNotFound, "sos request not found")
	ErrAlreadyResolved = apperr.New(apperr.KindConflict, "sos request has already been resolved")
	ErrInvalidStatus   = apperr.New(apperr.KindInvalid, "status must be approved or rejected")
	ErrCitizenNotFound = apperr.New(apperr.KindNotFound, "user not found, sync your profile first")
)
