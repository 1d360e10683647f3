// Package response writes JSON success and error bodies. Error bodies are
// always {"message": "..."}.
package response

import (
	"github.com/gin-gonic/gin"

	"github.com/alertwise/alertwise-backend/internal/apperr"
)

// CtxErrorKey holds the last error written by Error so the request logger
// can report the cause of 5xx responses.
const CtxErrorKey = "response_error"

type ErrorBody struct {
	Message string `json:"message"`
}

// Error maps err to its status code and writes the public message.
func Error(c *gin.Context, err error) {
	status := apperr.HTTPStatus(apperr.KindOf(err))
	c.Set(CtxErrorKey, err)
	c.JSON(status, ErrorBody{Message: apperr.PublicMessage(err)})
}

// Abort is Error for middleware: it also stops the handler chain.
func Abort(c *gin.Context, err error) {
	status := apperr.HTTPStatus(apperr.KindOf(err))
	c.Set(CtxErrorKey, err)
	c.AbortWithStatusJSON(status, ErrorBody{Message: apperr.PublicMessage(err)})
}

// BadRequest reports a body that could not be decoded.
func BadRequest(c *gin.Context, message string) {
	Error(c, apperr.Invalid("%s", message))
}

func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}
