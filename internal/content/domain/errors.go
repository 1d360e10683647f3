package domain

import "github.com/alertwise/alertwise-backend/internal/apperr"

var (
	ErrModuleNotFound = apperr.New(apperr.KindNotFound, "module not found")
	ErrSlugTaken      = apperr.New(apperr.KindConflict, "slug already exists")
	ErrQuizNotFound   = apperr.New(apperr.KindNotFound, "quiz not found")
)
