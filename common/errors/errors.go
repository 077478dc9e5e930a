package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error represents an application error that knows its HTTP status.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// InvalidArgument is returned for malformed identifiers and references to
// records that do not exist.
func InvalidArgument(message string) *Error {
	return New(http.StatusBadRequest, message, nil)
}

// Internal wraps an unexpected store failure. The underlying message is kept
// in the client-facing text.
func Internal(message string, err error) *Error {
	return New(http.StatusInternalServerError, message, err)
}

// Validation reports request shape/type/range failures.
func Validation(message string, details any) *Error {
	e := New(http.StatusUnprocessableEntity, message, nil)
	e.Details = details
	return e
}

// StatusCode returns the HTTP status carried by err, or 500.
func StatusCode(err error) int {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// ErrorMiddleware renders the last error attached to the gin context.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *Error
		if !stderrors.As(err, &appErr) {
			appErr = Internal("Internal server error", err)
		}

		if appErr.Code >= http.StatusInternalServerError {
			zap.L().Error("request failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
		}

		body := gin.H{"error": appErr.Error()}
		if appErr.Details != nil {
			body["details"] = appErr.Details
		}
		c.AbortWithStatusJSON(appErr.Code, body)
	}
}
