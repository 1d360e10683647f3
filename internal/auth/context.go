package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxSubjectID = "subject_id"
)

// SubjectID returns the verified subject for the current request, or ""
// when the request is anonymous. Set by the identity middleware.
func SubjectID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxSubjectID))
}
