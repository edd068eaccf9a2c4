// Package response writes the uniform envelope every endpoint returns:
// {success, message, data?, stack?}.
package response

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"userhub/internal/apperr"
)

type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

var includeStacks bool

// IncludeStacks enables stack traces on server-fault responses. Set
// once at startup for development deployments.
func IncludeStacks(enabled bool) {
	includeStacks = enabled
}

func OK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Fail writes an error envelope with an explicit status.
func Fail(c *gin.Context, status int, message string) {
	envelope := Envelope{Message: message}
	if includeStacks && status >= http.StatusInternalServerError {
		envelope.Stack = string(debug.Stack())
	}
	c.JSON(status, envelope)
}

// Error maps a classified error to its status and writes the envelope.
func Error(c *gin.Context, err error) {
	Fail(c, apperr.StatusOf(err), err.Error())
}
