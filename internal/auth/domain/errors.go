package domain

import "github.com/alertwise/alertwise-backend/internal/apperr"

var (
	ErrCitizenNotFound = apperr.New(apperr.KindNotFound, "citizen not found")
	ErrSubjectMismatch = apperr.Forbidden("subject_id does not match the authenticated user")
	ErrNotElevated     = apperr.Forbidden("forbidden: elevated access required")
	ErrUnauthenticated = apperr.Unauthenticated("unauthorized")
)
