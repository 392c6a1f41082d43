package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FieldError points at one invalid input field.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// APIError is the problem document returned for every failed request.
type APIError struct {
	Type        string       `json:"type"`
	Title       string       `json:"title"`
	Status      int          `json:"status"`
	Detail      string       `json:"detail"`
	Code        string       `json:"code"`
	FieldErrors []FieldError `json:"fieldErrors"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

// Is matches on Code so that sentinel errors can be compared with errors.Is
// even after their detail has been rewritten.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Code == e.Code
}

// WithDetail returns a copy of e with a different detail message.
func (e *APIError) WithDetail(detail string) *APIError {
	cp := *e
	cp.Detail = detail
	return &cp
}

func NewAPIError(status int, code, detail string) *APIError {
	return &APIError{
		Type:        fmt.Sprintf("https://httpstatuses.com/%d", status),
		Title:       http.StatusText(status),
		Status:      status,
		Detail:      detail,
		Code:        code,
		FieldErrors: []FieldError{},
	}
}

func BadRequest(code, detail string) *APIError {
	return NewAPIError(http.StatusBadRequest, code, detail)
}

func ValidationError(fields []FieldError) *APIError {
	e := NewAPIError(http.StatusBadRequest, "validation_error", "Input validation failed.")
	e.Title = "Validation Error"
	if fields != nil {
		e.FieldErrors = fields
	}
	return e
}

func Unauthorized(code, detail string) *APIError {
	return NewAPIError(http.StatusUnauthorized, code, detail)
}

func Forbidden(code, detail string) *APIError {
	return NewAPIError(http.StatusForbidden, code, detail)
}

func NotFound(code, detail string) *APIError {
	return NewAPIError(http.StatusNotFound, code, detail)
}

func Conflict(code, detail string) *APIError {
	return NewAPIError(http.StatusConflict, code, detail)
}

func TooManyRequests(code, detail string) *APIError {
	return NewAPIError(http.StatusTooManyRequests, code, detail)
}

func Internal() *APIError {
	return NewAPIError(http.StatusInternalServerError, "internal_error", "Unexpected server error.")
}

// RespondError writes err as a problem document. Errors that are not an
// *APIError are logged and reported as 500.
func RespondError(c *gin.Context, err error) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		GetLogger().Error("Unhandled error",
			zap.String("requestId", RequestID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		apiErr = Internal()
	} else if apiErr.Status >= http.StatusInternalServerError {
		GetLogger().Error("Request failed", zap.String("requestId", RequestID(c)), zap.Error(err))
	}
	writeProblem(c, apiErr)
}

func writeProblem(c *gin.Context, apiErr *APIError) {
	c.AbortWithStatusJSON(apiErr.Status, Envelope{
		Success:   false,
		Error:     apiErr,
		RequestID: RequestID(c),
	})
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				GetLogger().Error("Unhandled panic",
					zap.Any("error", rec),
					zap.String("requestId", RequestID(c)),
					zap.String("path", c.Request.URL.Path),
				)
				writeProblem(c, Internal())
			}
		}()
		c.Next()
	}
}
