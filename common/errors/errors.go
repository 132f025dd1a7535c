// Package errors defines the application error payload shared by all
// controllers. Every error response carries a detail message and an HTTP
// status drawn from 400, 404, 429 or 500.
package errors

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error is an application error with an HTTP status code.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error.
func New(code int, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Common error values.
var (
	ErrBadRequest     = New(http.StatusBadRequest, "Bad request", nil)
	ErrUnauthorized   = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrNotFound       = New(http.StatusNotFound, "Not found", nil)
	ErrTooManyReqs    = New(http.StatusTooManyRequests, "Too many requests", nil)
	ErrInternalServer = New(http.StatusInternalServerError, "Internal server error", nil)
)

// Middleware converts errors attached to the gin context into the
// standard {"detail": ...} payload.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		appErr, ok := err.(*Error)
		if !ok {
			appErr = New(http.StatusInternalServerError, "An unexpected error occurred", err)
		}
		c.JSON(appErr.Code, gin.H{"detail": appErr.Message})
		c.Abort()
	}
}
